package emotion

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		in   string
		want Mood
	}{
		{"I feel sad today", MoodUpset},
		{"I'm so TIRED", MoodUpset},
		{"not good at all", MoodUpset},
		{"I don't feel like it", MoodUpset},
		{"toast and eggs", MoodNeutral},
		{"I lost my badge", MoodNeutral}, // "bad" must not match inside a word
		{"", MoodNeutral},
		{"   ", MoodNeutral},
	}
	for _, tc := range cases {
		if got := Detect(tc.in); got != tc.want {
			t.Errorf("Detect(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoodString(t *testing.T) {
	if MoodUpset.String() != "upset" || MoodNeutral.String() != "neutral" {
		t.Error("unexpected Mood strings")
	}
}
