package quiz

import (
	"fmt"

	"github.com/remivoice/remi/internal/difficulty"
)

// DefaultQuestions is the built-in bank used when no CSV file is supplied.
// Caregivers are expected to replace it with personalized questions; see the
// answers column of the CSV format.
func DefaultQuestions() []Question {
	type row struct {
		text    string
		tier    difficulty.Tier
		answers []string
	}
	rows := []row{
		{"What is your favorite color?", difficulty.TierEasy, nil},
		{"What animal says meow?", difficulty.TierEasy, []string{"cat", "a cat", "kitty"}},
		{"What day of the week is it today?", difficulty.TierEasy, nil},
		{"What did you have for breakfast this morning?", difficulty.TierEasy, nil},
		{"What season are we in right now?", difficulty.TierEasy, []string{"spring", "summer", "fall", "autumn", "winter"}},
		{"How many months are there in a year?", difficulty.TierEasy, []string{"12", "twelve"}},

		{"What is the capital of France?", difficulty.TierMedium, []string{"paris"}},
		{"What is 25 plus 15?", difficulty.TierMedium, []string{"40", "forty"}},
		{"Name three types of fruits.", difficulty.TierMedium, []string{"apple banana orange"}},
		{"What did you have for lunch yesterday?", difficulty.TierMedium, nil},

		{"What did you do last weekend with your family?", difficulty.TierHard, nil},
		{"What medications did you take this morning?", difficulty.TierHard, nil},
		{"Can you name three animals that start with the letter B?", difficulty.TierHard, []string{"bear bird butterfly"}},
	}

	out := make([]Question, 0, len(rows))
	for i, r := range rows {
		out = append(out, NewQuestion(fmt.Sprintf("builtin-%02d", i+1), r.text, r.tier, r.answers))
	}
	return out
}
