package difficulty

// Verdict is the outcome of judging one answer.
type Verdict int

const (
	// VerdictUnknown means the matcher could not decide. It never moves
	// streaks or the tier.
	VerdictUnknown Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

const (
	// PromoteStreak is the consecutive-correct count that raises the tier.
	PromoteStreak = 3
	// DemoteStreak is the consecutive-incorrect count that lowers the tier.
	DemoteStreak = 2
)

// Controller tracks the current tier and answer streaks for one session.
// It moves at most one tier step per verdict.
type Controller struct {
	tier            Tier
	correctStreak   int
	incorrectStreak int
}

// NewController starts a controller at the easy tier.
func NewController() *Controller {
	return &Controller{tier: TierEasy}
}

// Transition records a tier change caused by a verdict.
type Transition struct {
	From Tier
	To   Tier
}

// Tier returns the current tier.
func (c *Controller) Tier() Tier { return c.tier }

// CorrectStreak returns the current run of correct verdicts.
func (c *Controller) CorrectStreak() int { return c.correctStreak }

// IncorrectStreak returns the current run of incorrect verdicts.
func (c *Controller) IncorrectStreak() int { return c.incorrectStreak }

// Record consumes a verdict and returns a Transition if the tier changed.
// A correct verdict zeroes the incorrect streak and vice versa; the streak
// threshold is checked after the update, and the crossing streak resets on
// promotion or demotion.
func (c *Controller) Record(v Verdict) *Transition {
	switch v {
	case VerdictCorrect:
		c.correctStreak++
		c.incorrectStreak = 0
		if c.correctStreak >= PromoteStreak && c.tier != TierHard {
			from := c.tier
			c.tier++
			c.correctStreak = 0
			return &Transition{From: from, To: c.tier}
		}
	case VerdictIncorrect:
		c.incorrectStreak++
		c.correctStreak = 0
		if c.incorrectStreak >= DemoteStreak && c.tier != TierEasy {
			from := c.tier
			c.tier--
			c.incorrectStreak = 0
			return &Transition{From: from, To: c.tier}
		}
	}
	return nil
}
