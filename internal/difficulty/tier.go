package difficulty

import (
	"fmt"
	"strings"
)

// Tier is one of the three canonical difficulty levels.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// Tiers lists all tiers in ascending order of difficulty.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier normalizes a difficulty label to a Tier. Single-letter and
// full-word forms are accepted, case-insensitive ("E", "easy", "Medium").
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "easy":
		return TierEasy, nil
	case "m", "medium":
		return TierMedium, nil
	case "h", "hard":
		return TierHard, nil
	default:
		return TierEasy, fmt.Errorf("unknown difficulty level: %q", s)
	}
}
