// Package relay 实现面向客户端的规范化事件流：把上游补全 API 的增量响应
// 转码为 token/meta/done/error 事件，并在上游调用前执行网关策略。
package relay

import (
	"encoding/json"
	"fmt"
	"strings"

	"yunai-stage-go/pkg/llm"
)

// 事件类型。每个流中恰好出现一个终止事件（done 或 error），且位于末尾。
const (
	EventToken = "token"
	EventMeta  = "meta"
	EventDone  = "done"
	EventError = "error"
)

// StreamEvent 是规范化协议的基本单元。Data 的含义取决于 Type：
// token 为可见文本片段，meta 为 JSON 编码的 Meta，error 为人类可读的消息。
type StreamEvent struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Meta 是随流下发的带外结构化负载。
type Meta struct {
	Emotion        string   `json:"emotion,omitempty"`
	AffectionDelta *float64 `json:"affectionDelta,omitempty"`
	Note           string   `json:"note,omitempty"`
}

// Token 构造一个文本片段事件。
func Token(text string) StreamEvent {
	return StreamEvent{Type: EventToken, Data: text}
}

// MetaEvent 构造一个带外元数据事件，Meta 在线上以字符串内嵌 JSON 的形式传输。
func MetaEvent(m Meta) StreamEvent {
	b, _ := json.Marshal(m)
	return StreamEvent{Type: EventMeta, Data: string(b)}
}

// Done 构造终止事件。
func Done() StreamEvent {
	return StreamEvent{Type: EventDone, Data: ""}
}

// ErrorEvent 构造携带消息的终止事件。
func ErrorEvent(msg string) StreamEvent {
	return StreamEvent{Type: EventError, Data: msg}
}

// DecodeMeta 解析 meta 事件的负载。
func (e StreamEvent) DecodeMeta() (Meta, error) {
	var m Meta
	if e.Type != EventMeta {
		return m, fmt.Errorf("not a meta event: %s", e.Type)
	}
	if err := json.Unmarshal([]byte(e.Data), &m); err != nil {
		return m, fmt.Errorf("failed to decode meta payload: %w", err)
	}
	return m, nil
}

// Terminal 报告该事件是否为终止事件。
func (e StreamEvent) Terminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

// SSE 按 server-sent-events 帧格式编码事件。
func (e StreamEvent) SSE() []byte {
	b, _ := json.Marshal(e)
	return []byte("data: " + string(b) + "\n\n")
}

// ParseSSERecord 解析一条以空行分隔的 SSE 记录。非 data 记录返回 ok=false。
func ParseSSERecord(record string) (StreamEvent, bool) {
	line := strings.TrimSpace(record)
	if !strings.HasPrefix(line, "data:") {
		return StreamEvent{}, false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	var ev StreamEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return StreamEvent{}, false
	}
	return ev, true
}

// EventWriter 把事件写往某个传输层（SSE 响应、websocket 帧或测试缓冲）。
type EventWriter interface {
	WriteEvent(ev StreamEvent) error
}

// ChatRequest 是中继的请求体。History 的插入顺序即时间顺序。
type ChatRequest struct {
	Message        string        `json:"message"`
	History        []llm.Message `json:"history,omitempty"`
	SystemOverride string        `json:"systemOverride,omitempty"`
	Temperature    *float64      `json:"temperature,omitempty"`
	MaxTokens      *int          `json:"max_tokens,omitempty"`
	Model          string        `json:"model,omitempty"`
	Freechat       bool          `json:"freechat,omitempty"`
}
