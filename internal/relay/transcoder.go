package relay

import "yunai-stage-go/pkg/llm"

// Transcoder 把一次上游流式响应转码为规范化事件序列。
// 每个请求实例化一个，内部状态不跨请求共享。
type Transcoder struct {
	w           EventWriter
	scanner     *tagScanner
	lastDelta   string
	lastEmotion string
	wrote       bool
	terminated  bool
}

// NewTranscoder 创建一个写往 w 的转码会话。
func NewTranscoder(w EventWriter) *Transcoder {
	return &Transcoder{w: w, scanner: newTagScanner()}
}

// OnDelta 处理一个上游增量分块。与上一分块完全相同的分块会被折叠
// （上游偶发的重复分块），新检测到的情绪变化以 meta 事件先于其后的文本下发。
func (t *Transcoder) OnDelta(delta string) error {
	if delta == "" || delta == t.lastDelta {
		return nil
	}
	t.lastDelta = delta

	text, emotions := t.scanner.Feed(delta)
	for _, emo := range emotions {
		if emo == t.lastEmotion {
			continue
		}
		t.lastEmotion = emo
		if err := t.write(MetaEvent(Meta{Emotion: emo})); err != nil {
			return err
		}
	}
	if text != "" {
		return t.write(Token(text))
	}
	return nil
}

// Finish 冲刷未闭合标签中的滞留文本并发出 done。重复调用是安全的。
func (t *Transcoder) Finish() error {
	if t.terminated {
		return nil
	}
	if pending := t.scanner.Flush(); pending != "" {
		if err := t.write(Token(pending)); err != nil {
			return err
		}
	}
	t.terminated = true
	return t.w.WriteEvent(Done())
}

// Fail 发出携带消息的 error 终止事件。已终止的流上调用无效果。
func (t *Transcoder) Fail(err error) error {
	if t.terminated {
		return nil
	}
	t.terminated = true
	return t.w.WriteEvent(ErrorEvent(err.Error()))
}

// Wrote 报告是否已向客户端写出过任何事件，用于判断还能否镜像 HTTP 状态码。
func (t *Transcoder) Wrote() bool {
	return t.wrote
}

func (t *Transcoder) write(ev StreamEvent) error {
	t.wrote = true
	return t.w.WriteEvent(ev)
}

// ComposeMessages 组装发往上游的消息列表：系统提示在前（覆盖值优先，
// 否则使用默认人设），其后按序追加历史，最后是有效提示词。
func ComposeMessages(systemOverride, defaultPersona string, history []llm.Message, prompt string) []llm.Message {
	system := defaultPersona
	if systemOverride != "" {
		system = systemOverride
	}
	msgs := make([]llm.Message, 0, len(history)+2)
	if system != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: system})
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Content: prompt})
	return msgs
}
