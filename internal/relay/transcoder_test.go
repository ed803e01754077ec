package relay

import (
	"errors"
	"strings"
	"testing"
)

// recordingWriter 收集写出的事件供断言。
type recordingWriter struct {
	events []StreamEvent
}

func (w *recordingWriter) WriteEvent(ev StreamEvent) error {
	w.events = append(w.events, ev)
	return nil
}

func (w *recordingWriter) tokens() string {
	var b strings.Builder
	for _, ev := range w.events {
		if ev.Type == EventToken {
			b.WriteString(ev.Data)
		}
	}
	return b.String()
}

func (w *recordingWriter) terminalCount() int {
	n := 0
	for _, ev := range w.events {
		if ev.Terminal() {
			n++
		}
	}
	return n
}

func TestTranscoder_TokenConcatenation(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	for _, d := range []string{"(change)", "你好", "，", "世界"} {
		if err := tc.OnDelta(d); err != nil {
			t.Fatalf("OnDelta(%q): %v", d, err)
		}
	}
	if err := tc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if got := w.tokens(); got != "你好，世界" {
		t.Fatalf("tokens=%q, want 你好，世界", got)
	}
	if w.terminalCount() != 1 {
		t.Fatalf("terminal events=%d, want 1", w.terminalCount())
	}
	if last := w.events[len(w.events)-1]; last.Type != EventDone {
		t.Fatalf("last event=%+v, want done", last)
	}
}

func TestTranscoder_MetaPrecedesTokens(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	if err := tc.OnDelta("(change)hello"); err != nil {
		t.Fatalf("OnDelta: %v", err)
	}
	if len(w.events) != 2 {
		t.Fatalf("events=%d, want 2", len(w.events))
	}
	if w.events[0].Type != EventMeta {
		t.Fatalf("first event=%+v, want meta", w.events[0])
	}
	m, err := w.events[0].DecodeMeta()
	if err != nil || m.Emotion != "change" {
		t.Fatalf("meta=%+v err=%v, want emotion change", m, err)
	}
	if w.events[1].Type != EventToken || w.events[1].Data != "hello" {
		t.Fatalf("second event=%+v, want token hello", w.events[1])
	}
}

func TestTranscoder_DuplicateDeltaCollapsed(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	for _, d := range []string{"abc", "abc", "def", "abc"} {
		if err := tc.OnDelta(d); err != nil {
			t.Fatalf("OnDelta(%q): %v", d, err)
		}
	}
	if got := w.tokens(); got != "abcdefabc" {
		t.Fatalf("tokens=%q, want abcdefabc", got)
	}
}

func TestTranscoder_UnchangedEmotionNotReEmitted(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	// 第二个 change 标签值未变化，不应再发 meta
	_ = tc.OnDelta("(change)")
	_ = tc.OnDelta("(change)hi")
	metas := 0
	for _, ev := range w.events {
		if ev.Type == EventMeta {
			metas++
		}
	}
	if metas != 1 {
		t.Fatalf("meta events=%d, want 1", metas)
	}
}

func TestTranscoder_FailEmitsSingleTerminalError(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	_ = tc.OnDelta("partial")
	if err := tc.Fail(errors.New("upstream broke")); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	// 已终止的流上再调用无效果
	_ = tc.Finish()
	_ = tc.Fail(errors.New("again"))

	if w.terminalCount() != 1 {
		t.Fatalf("terminal events=%d, want 1", w.terminalCount())
	}
	last := w.events[len(w.events)-1]
	if last.Type != EventError || last.Data != "upstream broke" {
		t.Fatalf("last event=%+v, want error with message", last)
	}
}

func TestTranscoder_FinishFlushesUnclosedTag(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	tc := NewTranscoder(w)
	_ = tc.OnDelta("(chan")
	_ = tc.Finish()

	if got := w.tokens(); got != "(chan" {
		t.Fatalf("tokens=%q, want (chan", got)
	}
}
