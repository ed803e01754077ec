package relay

import "testing"

func TestStreamEvent_SSERoundTrip(t *testing.T) {
	t.Parallel()

	delta := 2.0
	in := MetaEvent(Meta{Emotion: "happy", AffectionDelta: &delta})
	out, ok := ParseSSERecord(string(in.SSE()))
	if !ok {
		t.Fatalf("ParseSSERecord failed for %q", in.SSE())
	}
	m, err := out.DecodeMeta()
	if err != nil {
		t.Fatalf("DecodeMeta: %v", err)
	}
	if m.Emotion != "happy" || m.AffectionDelta == nil || *m.AffectionDelta != 2.0 {
		t.Fatalf("meta=%+v, want emotion happy delta 2", m)
	}
}

func TestParseSSERecord_Invalid(t *testing.T) {
	t.Parallel()

	for _, rec := range []string{"", ": comment", "event: foo", "data: not-json"} {
		if _, ok := ParseSSERecord(rec); ok {
			t.Fatalf("ParseSSERecord(%q) ok, want skip", rec)
		}
	}
}
