// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"yunai-stage-go/internal/config"
	"yunai-stage-go/internal/relay"
	"yunai-stage-go/pkg/llm"
	"yunai-stage-go/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// ChatHandler 负责把聊天请求经网关策略转发到上游，并以事件流响应。
type ChatHandler struct {
	llmClient llm.Client
	chatCfg   config.ChatConfig
	apiKey    string
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(llmClient llm.Client, chatCfg config.ChatConfig, apiKey string) *ChatHandler {
	return &ChatHandler{
		llmClient: llmClient,
		chatCfg:   chatCfg,
		apiKey:    apiKey,
	}
}

// sseEventWriter 把事件编码为 SSE 帧并立即冲刷，保持交互时延。
type sseEventWriter struct {
	c *gin.Context
}

func (w *sseEventWriter) WriteEvent(ev relay.StreamEvent) error {
	if _, err := w.c.Writer.Write(ev.SSE()); err != nil {
		return err
	}
	w.c.Writer.Flush()
	return nil
}

// HandleSSE 处理 POST /api/ai：对请求执行网关策略，必要时调用上游，
// 并把转码后的事件流以 text/event-stream 下发。
func (h *ChatHandler) HandleSSE(c *gin.Context) {
	var req relay.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writer := &sseEventWriter{c: c}
	h.serve(c, &req, writer)
}

// HandleWS 处理 websocket 聊天连接：每条客户端文本消息是一轮对话，
// 事件以 JSON 帧下发，连接保持打开以复用后续轮次。
func (h *ChatHandler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			return
		}

		req := decodeWSRequest(message)
		writer := &wsEventWriter{conn: conn}
		h.serve(c, req, writer)
	}
}

// decodeWSRequest 允许两种消息形态：完整的 JSON 请求体，或作为消息原文的裸文本。
func decodeWSRequest(message []byte) *relay.ChatRequest {
	var req relay.ChatRequest
	if len(message) > 0 && message[0] == '{' {
		if err := bindJSON(message, &req); err == nil && req.Message != "" {
			return &req
		}
	}
	return &relay.ChatRequest{Message: string(message), Freechat: true}
}

// serve 执行一轮完整的中继流程，保证恰好写出一个终止事件。
func (h *ChatHandler) serve(c *gin.Context, req *relay.ChatRequest, writer relay.EventWriter) {
	verdict := relay.EvaluateGate(req.Message, req.Freechat, h.chatCfg.FreechatDefault, h.apiKey != "")
	if len(verdict.Canned) > 0 {
		if verdict.HTTPStatus != 0 {
			c.Status(verdict.HTTPStatus)
		}
		for _, ev := range verdict.Canned {
			if err := writer.WriteEvent(ev); err != nil {
				log.Warnf("写出短路事件失败: %v", err)
				return
			}
		}
		return
	}

	persona := h.chatCfg.Persona
	if persona == "" {
		persona = config.DefaultPersona
	}
	messages := relay.ComposeMessages(req.SystemOverride, persona, req.History, verdict.Prompt)

	tc := relay.NewTranscoder(writer)
	err := h.llmClient.StreamChat(c.Request.Context(), llm.Request{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, tc.OnDelta)
	if err != nil {
		log.Errorf("上游流式调用失败: %v", err)
		// 流尚未开始时把上游状态镜像到本响应
		var ue *llm.UpstreamError
		if errors.As(err, &ue) && !tc.Wrote() {
			c.Status(ue.StatusCode)
		}
		_ = tc.Fail(err)
		return
	}
	_ = tc.Finish()
}
