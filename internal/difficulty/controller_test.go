package difficulty

import "testing"

func TestController_PromoteAfterThreeCorrect(t *testing.T) {
	c := NewController()

	if tr := c.Record(VerdictCorrect); tr != nil {
		t.Errorf("unexpected transition after 1 correct: %+v", tr)
	}
	if tr := c.Record(VerdictCorrect); tr != nil {
		t.Errorf("unexpected transition after 2 correct: %+v", tr)
	}

	tr := c.Record(VerdictCorrect)
	if tr == nil {
		t.Fatal("expected promotion after 3 correct")
	}
	if tr.From != TierEasy || tr.To != TierMedium {
		t.Errorf("transition = %v→%v, want easy→medium", tr.From, tr.To)
	}
	if c.Tier() != TierMedium {
		t.Errorf("Tier = %v, want medium", c.Tier())
	}
	if c.CorrectStreak() != 0 {
		t.Errorf("CorrectStreak = %d, want 0 after promotion", c.CorrectStreak())
	}
}

func TestController_PromotesExactlyOnce(t *testing.T) {
	c := NewController()

	// Three correct promotes to medium, not hard.
	c.Record(VerdictCorrect)
	c.Record(VerdictCorrect)
	c.Record(VerdictCorrect)

	if c.Tier() != TierMedium {
		t.Errorf("Tier = %v, want medium after a single 3-streak", c.Tier())
	}
}

func TestController_NoPromotionPastHard(t *testing.T) {
	c := NewController()

	for i := 0; i < 12; i++ {
		c.Record(VerdictCorrect)
	}

	if c.Tier() != TierHard {
		t.Errorf("Tier = %v, want hard", c.Tier())
	}
}

func TestController_DemoteAfterTwoIncorrect(t *testing.T) {
	c := &Controller{tier: TierHard}

	if tr := c.Record(VerdictIncorrect); tr != nil {
		t.Errorf("unexpected transition after 1 incorrect: %+v", tr)
	}
	tr := c.Record(VerdictIncorrect)
	if tr == nil {
		t.Fatal("expected demotion after 2 incorrect")
	}
	if tr.From != TierHard || tr.To != TierMedium {
		t.Errorf("transition = %v→%v, want hard→medium", tr.From, tr.To)
	}
	if c.IncorrectStreak() != 0 {
		t.Errorf("IncorrectStreak = %d, want 0 after demotion", c.IncorrectStreak())
	}
}

func TestController_NoDemotionPastEasy(t *testing.T) {
	c := NewController()

	for i := 0; i < 10; i++ {
		c.Record(VerdictIncorrect)
	}

	if c.Tier() != TierEasy {
		t.Errorf("Tier = %v, want easy", c.Tier())
	}
}

func TestController_StreaksMutuallyExclusive(t *testing.T) {
	c := NewController()

	verdicts := []Verdict{
		VerdictCorrect, VerdictCorrect, VerdictIncorrect,
		VerdictCorrect, VerdictIncorrect, VerdictIncorrect,
		VerdictCorrect,
	}
	for i, v := range verdicts {
		c.Record(v)
		if c.CorrectStreak() != 0 && c.IncorrectStreak() != 0 {
			t.Fatalf("after verdict %d: both streaks nonzero (%d, %d)",
				i, c.CorrectStreak(), c.IncorrectStreak())
		}
	}
}

func TestController_UnknownIsInert(t *testing.T) {
	c := NewController()
	c.Record(VerdictCorrect)
	c.Record(VerdictCorrect)

	if tr := c.Record(VerdictUnknown); tr != nil {
		t.Errorf("unexpected transition on unknown verdict: %+v", tr)
	}
	if c.CorrectStreak() != 2 {
		t.Errorf("CorrectStreak = %d, want 2 (unknown must not touch streaks)", c.CorrectStreak())
	}

	// The streak survives the unknown verdict, so the next correct promotes.
	tr := c.Record(VerdictCorrect)
	if tr == nil || tr.To != TierMedium {
		t.Errorf("expected promotion to medium, got %+v", tr)
	}
}

func TestParseTier(t *testing.T) {
	cases := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"easy", TierEasy, false},
		{"E", TierEasy, false},
		{"Medium", TierMedium, false},
		{"m", TierMedium, false},
		{"HARD", TierHard, false},
		{"h", TierHard, false},
		{" easy ", TierEasy, false},
		{"expert", TierEasy, true},
		{"", TierEasy, true},
	}

	for _, tc := range cases {
		got, err := ParseTier(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
