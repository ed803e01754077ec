package handler

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"yunai-stage-go/internal/relay"
)

// wsEventWriter 把事件编码为 websocket 文本帧。
type wsEventWriter struct {
	conn *websocket.Conn
}

func (w *wsEventWriter) WriteEvent(ev relay.StreamEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, b)
}

func bindJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
