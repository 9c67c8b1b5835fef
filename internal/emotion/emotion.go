// Package emotion flags distress in patient speech so the session can pause
// and comfort instead of pressing on with questions.
package emotion

import (
	"strings"

	"github.com/remivoice/remi/internal/match"
)

// Mood classifies a single utterance.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodUpset
)

func (m Mood) String() string {
	if m == MoodUpset {
		return "upset"
	}
	return "neutral"
}

// Single-word distress markers, matched against normalized tokens.
var upsetWords = []string{"sad", "upset", "tired", "bad", "lonely", "scared"}

// Multi-word markers, matched as substrings of the normalized text.
var upsetPhrases = []string{"not good", "not well", "dont feel", "feel awful"}

// Detect classifies the utterance. Token matching keeps "badge" from
// triggering on "bad"; phrases catch negations that tokens miss.
func Detect(text string) Mood {
	norm := match.Normalize(text)
	if norm == "" {
		return MoodNeutral
	}

	tokens := match.Tokens(norm)
	for _, w := range upsetWords {
		if tokens[w] {
			return MoodUpset
		}
	}
	for _, p := range upsetPhrases {
		if strings.Contains(norm, p) {
			return MoodUpset
		}
	}
	return MoodNeutral
}
