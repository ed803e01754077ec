package relay

import (
	"strings"
	"testing"
)

func feedAll(t *testing.T, s *tagScanner, chunks ...string) (string, []string) {
	t.Helper()
	var text strings.Builder
	var emotions []string
	for _, c := range chunks {
		out, emos := s.Feed(c)
		text.WriteString(out)
		emotions = append(emotions, emos...)
	}
	return text.String(), emotions
}

func TestTagScanner_LeadingTag(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "(change)hello")
	if text != "hello" {
		t.Fatalf("text=%q, want hello", text)
	}
	if len(emotions) != 1 || emotions[0] != "change" {
		t.Fatalf("emotions=%v, want [change]", emotions)
	}
}

func TestTagScanner_SplitAcrossChunks(t *testing.T) {
	t.Parallel()

	// 标签被网络分块截断时结果必须与未截断一致
	text, emotions := feedAll(t, newTagScanner(), "(ch", "ange)hel", "lo")
	if text != "hello" {
		t.Fatalf("text=%q, want hello", text)
	}
	if len(emotions) != 1 || emotions[0] != "change" {
		t.Fatalf("emotions=%v, want [change]", emotions)
	}
}

func TestTagScanner_FullWidthParens(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "（normal）你好")
	if text != "你好" {
		t.Fatalf("text=%q, want 你好", text)
	}
	if len(emotions) != 1 || emotions[0] != "normal" {
		t.Fatalf("emotions=%v, want [normal]", emotions)
	}
}

func TestTagScanner_EmotionPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"(emotion:change)x", "change"},
		{"(emotion=Normal)x", "normal"},
		{"(CHANGE)x", "change"},
		{"( change )x", "change"},
	}
	for _, c := range cases {
		_, emotions := feedAll(t, newTagScanner(), c.in)
		if len(emotions) != 1 || emotions[0] != c.want {
			t.Fatalf("Feed(%q) emotions=%v, want [%s]", c.in, emotions, c.want)
		}
	}
}

func TestTagScanner_TagAfterVisibleTextIsPlainText(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "你好(change)")
	if text != "你好(change)" {
		t.Fatalf("text=%q, want 你好(change)", text)
	}
	if len(emotions) != 0 {
		t.Fatalf("emotions=%v, want none", emotions)
	}
}

func TestTagScanner_LeadingWhitespaceDoesNotDisableTag(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "  \n(normal)hi")
	if text != "  \nhi" {
		t.Fatalf("text=%q, want %q", text, "  \nhi")
	}
	if len(emotions) != 1 || emotions[0] != "normal" {
		t.Fatalf("emotions=%v, want [normal]", emotions)
	}
}

func TestTagScanner_UnknownTagPassedThrough(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "(哈哈)你好")
	if text != "(哈哈)你好" {
		t.Fatalf("text=%q, want (哈哈)你好", text)
	}
	if len(emotions) != 0 {
		t.Fatalf("emotions=%v, want none", emotions)
	}
}

func TestTagScanner_MultipleLeadingTags(t *testing.T) {
	t.Parallel()

	text, emotions := feedAll(t, newTagScanner(), "(normal)(change)hi")
	if text != "hi" {
		t.Fatalf("text=%q, want hi", text)
	}
	if len(emotions) != 2 || emotions[0] != "normal" || emotions[1] != "change" {
		t.Fatalf("emotions=%v, want [normal change]", emotions)
	}
}

func TestTagScanner_FlushUnclosedTag(t *testing.T) {
	t.Parallel()

	s := newTagScanner()
	text, emotions := s.Feed("(chan")
	if text != "" || len(emotions) != 0 {
		t.Fatalf("Feed=%q/%v, want empty", text, emotions)
	}
	if got := s.Flush(); got != "(chan" {
		t.Fatalf("Flush()=%q, want (chan", got)
	}
}
