package relay

import "testing"

func TestEvaluateGate_SelfIntro(t *testing.T) {
	t.Parallel()

	v := EvaluateGate("自我介绍一下", true, false, false)
	if len(v.Canned) != 3 {
		t.Fatalf("Canned=%d events, want 3", len(v.Canned))
	}
	m, err := v.Canned[0].DecodeMeta()
	if err != nil || m.Emotion != "normal" {
		t.Fatalf("first event meta=%+v err=%v, want emotion normal", m, err)
	}
	if v.Canned[1].Type != EventToken || v.Canned[1].Data != SelfIntroLine {
		t.Fatalf("second event=%+v, want fixed self-intro token", v.Canned[1])
	}
	if v.Canned[2].Type != EventDone {
		t.Fatalf("third event=%+v, want done", v.Canned[2])
	}
	if v.HTTPStatus != 0 {
		t.Fatalf("HTTPStatus=%d, want 0", v.HTTPStatus)
	}
}

func TestEvaluateGate_FreechatPrefixes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		prompt string
	}{
		{"freechat:今天穿什么", "今天穿什么"},
		{"/ai 今天穿什么", "今天穿什么"},
		{"#ai 今天穿什么", "今天穿什么"},
	}
	for _, c := range cases {
		v := EvaluateGate(c.in, true, false, true)
		if len(v.Canned) != 0 {
			t.Fatalf("EvaluateGate(%q) short-circuited: %+v", c.in, v.Canned)
		}
		if v.Prompt != c.prompt {
			t.Fatalf("EvaluateGate(%q).Prompt=%q, want %q", c.in, v.Prompt, c.prompt)
		}
		if !v.Freechat {
			t.Fatalf("EvaluateGate(%q).Freechat=false, want true", c.in)
		}
	}
}

func TestEvaluateGate_FreechatBlocked(t *testing.T) {
	t.Parallel()

	// 默认关闭且无触发前缀：固定提示短路，事件顺序 meta、token、done
	v := EvaluateGate("随便聊聊", true, false, true)
	if len(v.Canned) != 3 {
		t.Fatalf("Canned=%d events, want 3", len(v.Canned))
	}
	m, err := v.Canned[0].DecodeMeta()
	if err != nil || m.Note != "freechat_blocked" {
		t.Fatalf("meta=%+v err=%v, want note freechat_blocked", m, err)
	}
	if v.Canned[1].Type != EventToken || v.Canned[1].Data != FreechatBlockedLine {
		t.Fatalf("token=%+v, want fixed blocked line", v.Canned[1])
	}
	if v.Canned[2].Type != EventDone {
		t.Fatalf("terminal=%+v, want done", v.Canned[2])
	}
}

func TestEvaluateGate_DefaultOnPassesThrough(t *testing.T) {
	t.Parallel()

	v := EvaluateGate("随便聊聊", true, true, true)
	if len(v.Canned) != 0 {
		t.Fatalf("short-circuited: %+v", v.Canned)
	}
	if v.Prompt != "随便聊聊" || !v.Freechat {
		t.Fatalf("Prompt=%q Freechat=%v, want unchanged prompt and freechat on", v.Prompt, v.Freechat)
	}
}

func TestEvaluateGate_MissingCredential(t *testing.T) {
	t.Parallel()

	v := EvaluateGate("freechat:hello", true, false, false)
	if len(v.Canned) != 1 || v.Canned[0].Type != EventError {
		t.Fatalf("Canned=%+v, want single error event", v.Canned)
	}
	if v.HTTPStatus != 500 {
		t.Fatalf("HTTPStatus=%d, want 500", v.HTTPStatus)
	}
}
