package emotion

import "testing"

func TestMatchVoice_ChangeAlwaysFromFixedSet(t *testing.T) {
	t.Parallel()

	set := map[string]bool{}
	for _, c := range ChangeVoices {
		set[c] = true
	}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		clip := MatchVoice("随便什么文本", "change")
		if !set[clip] {
			t.Fatalf("MatchVoice change returned %q, not in fixed set", clip)
		}
		seen[clip] = true
	}
	if len(seen) != len(ChangeVoices) {
		t.Fatalf("seen %d distinct clips over 200 calls, want %d", len(seen), len(ChangeVoices))
	}
}

func TestMatchVoice_UnmatchedReturnsNone(t *testing.T) {
	t.Parallel()

	if got := MatchVoice("unmatched text", ""); got != "" {
		t.Fatalf("MatchVoice=%q, want none", got)
	}
	if got := MatchVoice("", ""); got != "" {
		t.Fatalf("MatchVoice empty=%q, want none", got)
	}
}

func TestMatchVoice_KnownLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		clip string
	}{
		{"唔，有点想吃狐狸乌冬了呢。", "/audio/voice/[yunai]狐狸乌冬mp3.mp3"},
		{"自我介绍？好吧，我叫東嘉弥真 御奈。如果你有任何时尚方面的问题想问我，随时欢迎。", "/audio/voice/[yunai]自己紹介mp3.mp3"},
		{"呀，这花好香……谢谢你，我会好好珍惜的。", "/audio/voice/voice_flower_like.mp3"},
		{"感觉和你关系变好了呢", "/audio/voice/[yunai]和你说话很开心.mp3"},
		{"谢谢你的礼物，但是泡姜我有点苦手。", "/audio/voice/[yunai]泡姜苦手.mp3"},
	}
	for _, c := range cases {
		if got := MatchVoice(c.text, ""); got != c.clip {
			t.Fatalf("MatchVoice(%q)=%q, want %q", c.text, got, c.clip)
		}
	}
}
