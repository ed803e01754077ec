package emotion

import "testing"

func TestInferEmotion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text      string
		affection int
		want      string
	}{
		{"我好开心", 50, Happy},
		{"气死我了", 50, Angry},
		{"我有点难过", 50, Sad},
		{"别看我，好害羞", 50, Shy},
		{"", 10, Angry},
		{"", 20, Angry},
		{"", 50, Neutral},
		{"", 70, Happy},
		{"今天天气不错", 50, Neutral},
		{"今天天气不错", 90, Happy},
	}
	for _, c := range cases {
		if got := InferEmotion(c.text, c.affection); got != c.want {
			t.Fatalf("InferEmotion(%q, %d)=%q, want %q", c.text, c.affection, got, c.want)
		}
	}
}

func TestInferEmotion_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// 同时命中 happy 与 angry 规则时按规则声明顺序取第一个
	if got := InferEmotion("又开心又生气", 50); got != Happy {
		t.Fatalf("InferEmotion=%q, want %q", got, Happy)
	}
}
