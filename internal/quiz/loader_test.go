package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remivoice/remi/internal/difficulty"
)

func TestLoad(t *testing.T) {
	src := strings.Join([]string{
		"Question,Difficulty,Answers",
		`What is your favorite color?,E,red|blue`,
		`What did you have for lunch yesterday?,medium,lasagna`,
		`What medications did you take this morning?,H,aspirin`,
	}, "\n")

	questions, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, questions, 3)

	require.Equal(t, difficulty.TierEasy, questions[0].Tier)
	require.Equal(t, []string{"red", "blue"}, questions[0].Answers)
	require.Equal(t, difficulty.TierMedium, questions[1].Tier)
	require.Equal(t, difficulty.TierHard, questions[2].Tier)
}

func TestLoad_HeaderCaseInsensitive(t *testing.T) {
	src := "  QUESTION , difficulty \nWhat time is it?,easy\n"

	questions, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, CategoryTime, questions[0].Category)
	require.NotEmpty(t, questions[0].Answers, "answers derived from category")
}

func TestLoad_MissingColumnIsFatal(t *testing.T) {
	src := "Question,Answers\nWhat time is it?,time\n"

	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "difficulty")
}

func TestLoad_UnknownDifficultyIsFatal(t *testing.T) {
	src := "Question,Difficulty\nWhat time is it?,expert\n"

	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
}

func TestLoad_EmptySourceIsFatal(t *testing.T) {
	_, err := Load(strings.NewReader("Question,Difficulty\n"))
	require.Error(t, err)
}
