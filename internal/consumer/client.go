package consumer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"yunai-stage-go/internal/assets"
	"yunai-stage-go/internal/relay"
)

// RelayClient 访问中继的 HTTP 接口：事件流与素材目录。
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelayClient 创建一个指向 baseURL 的客户端。
func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Stream 发起一轮对话并逐事件回调 onEvent；onEvent 返回错误会中断读取。
// 收到终止事件后返回。格式不合法的行被跳过，不中断整个流。
func (c *RelayClient) Stream(ctx context.Context, req relay.ChatRequest, onEvent func(relay.StreamEvent) error) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/ai", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call relay: %w", err)
	}
	defer resp.Body.Close()

	// 非 2xx 的响应体中仍可能携带 error 事件，继续按事件流读取
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var record strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			record.WriteString(line)
			record.WriteString("\n")
			continue
		}
		// 空行是记录边界
		ev, ok := relay.ParseSSERecord(record.String())
		record.Reset()
		if !ok {
			continue
		}
		if err := onEvent(ev); err != nil {
			return err
		}
		if ev.Terminal() {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read event stream: %w", err)
	}
	// 流在终止事件之前结束：把残留记录当作最后一条处理
	if record.Len() > 0 {
		if ev, ok := relay.ParseSSERecord(record.String()); ok {
			if err := onEvent(ev); err != nil {
				return err
			}
			if ev.Terminal() {
				return nil
			}
		}
	}
	return io.ErrUnexpectedEOF
}

// FetchSprites 拉取指定角色（可为空）的立绘目录。
// 请求或解析失败时按空目录处理，调用方无须区分。
func (c *RelayClient) FetchSprites(ctx context.Context, char string) []Sprite {
	url := c.baseURL + "/api/assets?type=sprites"
	if char != "" {
		url += "&char=" + char
	}
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	var payload struct {
		Files []assets.File `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}
	sprites := make([]Sprite, 0, len(payload.Files))
	for _, f := range payload.Files {
		sprites = append(sprites, Sprite{URL: f.URL, Char: f.Char, Emotion: f.Emotion})
	}
	return sprites
}
