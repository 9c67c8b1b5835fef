package quiz

import (
	"strings"

	"github.com/remivoice/remi/internal/difficulty"
)

// Category is the inferred answer category for a question. It selects which
// heuristics and canonical answers apply when judging responses.
type Category string

const (
	CategoryTime     Category = "time"
	CategoryDate     Category = "date"
	CategoryLocation Category = "location"
	CategoryName     Category = "name"
	CategoryMemory   Category = "memory-recall"
	CategoryYesNo    Category = "yes/no"
	CategoryFood     Category = "food"
	CategoryGeneric  Category = "generic"
)

// Question is one quiz item. Immutable once loaded; the category is derived
// from the question text at load time and cached.
type Question struct {
	ID       string
	Text     string
	Tier     difficulty.Tier
	Answers  []string
	Category Category
}

// NewQuestion builds a Question with its category inferred and, when no
// explicit answers are given, canonical answers derived from the category.
func NewQuestion(id, text string, tier difficulty.Tier, answers []string) Question {
	cat := InferCategory(text)
	if len(answers) == 0 {
		answers = DeriveAnswers(cat)
	}
	return Question{
		ID:       id,
		Text:     text,
		Tier:     tier,
		Answers:  answers,
		Category: cat,
	}
}

var yesNoPrefixes = []string{"are you", "is it", "do you", "have you", "can you"}

// InferCategory tags a question by keyword rules on its text.
func InferCategory(text string) Category {
	q := strings.ToLower(text)

	switch {
	case strings.Contains(q, "breakfast"), strings.Contains(q, "lunch"),
		strings.Contains(q, "dinner"), strings.Contains(q, "eat"):
		return CategoryFood
	case strings.Contains(q, "time"), strings.Contains(q, "clock"):
		return CategoryTime
	case strings.Contains(q, "date"), strings.Contains(q, "day"):
		return CategoryDate
	case strings.Contains(q, "where"), strings.Contains(q, "location"):
		return CategoryLocation
	case strings.Contains(q, "name"):
		return CategoryName
	case strings.Contains(q, "remember"), strings.Contains(q, "memory"):
		return CategoryMemory
	}

	for _, p := range yesNoPrefixes {
		if strings.HasPrefix(q, p) {
			return CategoryYesNo
		}
	}
	return CategoryGeneric
}

// derivedAnswers maps a category to the acceptable phrasings used when a
// question row carries no explicit answers.
var derivedAnswers = map[Category][]string{
	CategoryTime: {
		"time", "the time", "what time", "current time", "now", "present time",
		"it's time", "the current time", "what's the time", "tell me the time",
	},
	CategoryDate: {
		"date", "the date", "today's date", "current date", "today", "present date",
		"what's the date", "tell me the date", "what day is it", "the current date",
	},
	CategoryLocation: {
		"here", "this place", "current location", "my location", "present location",
		"where I am", "I am here", "this is where I am", "my current location",
		"where we are", "this location",
	},
	CategoryName: {
		"name", "my name", "your name", "the name", "what's my name", "who am I",
		"my name is", "I am", "this is", "it's", "that's my name", "my name would be",
	},
	CategoryMemory: {
		"yes", "I remember", "I recall", "I know", "I can remember", "I do remember",
		"yes I remember", "I can recall", "I do recall", "I remember that", "yes I do",
	},
	CategoryYesNo: {
		"yes", "no", "maybe", "I think so", "I don't think so", "not sure",
		"I'm not sure", "I don't know", "possibly", "probably", "definitely",
	},
}

// DeriveAnswers returns the canonical answers for a category when none were
// authored. Generic questions fall back to the yes/no set.
func DeriveAnswers(cat Category) []string {
	if a, ok := derivedAnswers[cat]; ok {
		return append([]string(nil), a...)
	}
	return append([]string(nil), derivedAnswers[CategoryYesNo]...)
}
