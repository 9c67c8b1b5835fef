package match

import (
	"context"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/quiz"
)

// JudgeResult is the tagged outcome of a semantic-judge call. The strict
// parser lives at the collaborator boundary; nothing downstream re-parses
// free text.
type JudgeResult int

const (
	JudgeUnknown JudgeResult = iota
	JudgeYes
	JudgeNo
)

// SemanticJudge decides whether user text is semantically equivalent to any
// canonical answer. Implementations may be remote and slow; JudgeUnknown is
// always a safe return and makes the matcher fall through to its lexical
// fallback.
type SemanticJudge interface {
	Equivalent(ctx context.Context, userText string, answers []string) JudgeResult
}

// Lexical fallback thresholds.
const (
	overlapThreshold    = 0.7 // fraction of answer tokens present in user tokens
	similarityThreshold = 0.8 // char-position overlap ratio for word similarity
	minSimilarWordLen   = 4   // words shorter than this are never "similar"
)

// Match judges user text against a question's canonical answers. The pipeline
// short-circuits on the first decisive layer: exact match, curated category
// vocabulary, semantic judge (when wired), then the lexical fallback. Empty
// input is indeterminate, never wrong; the caller re-prompts instead of
// penalizing silence.
func Match(ctx context.Context, userText string, answers []string, cat quiz.Category, judge SemanticJudge) difficulty.Verdict {
	user := Normalize(userText)
	if user == "" {
		return difficulty.VerdictUnknown
	}

	normalized := make([]string, 0, len(answers))
	for _, a := range answers {
		if n := Normalize(a); n != "" {
			normalized = append(normalized, n)
		}
	}

	for _, a := range normalized {
		if user == a {
			return difficulty.VerdictCorrect
		}
	}

	if vocab, ok := VocabularyFor(cat); ok && vocab.Contains(user) {
		return difficulty.VerdictCorrect
	}

	if judge != nil {
		switch judge.Equivalent(ctx, userText, answers) {
		case JudgeYes:
			return difficulty.VerdictCorrect
		case JudgeNo:
			return difficulty.VerdictIncorrect
		}
		// JudgeUnknown falls through to the lexical layer.
	}

	if lexicalMatch(user, normalized) {
		return difficulty.VerdictCorrect
	}
	return difficulty.VerdictIncorrect
}

// lexicalMatch is the always-available last layer: token-set overlap, long
// key-word containment, and character-position word similarity.
func lexicalMatch(user string, answers []string) bool {
	userTokens := Tokens(user)

	for _, answer := range answers {
		answerTokens := Tokens(answer)
		if len(answerTokens) == 0 {
			continue
		}

		overlap := 0
		for w := range answerTokens {
			if userTokens[w] {
				overlap++
			}
		}
		if float64(overlap) >= float64(len(answerTokens))*overlapThreshold {
			return true
		}

		allKeyWordsPresent := true
		hasKeyWords := false
		for w := range answerTokens {
			if len(w) <= 3 {
				continue
			}
			hasKeyWords = true
			if !userTokens[w] {
				allKeyWordsPresent = false
				break
			}
		}
		if hasKeyWords && allKeyWordsPresent {
			return true
		}

		for uw := range userTokens {
			for aw := range answerTokens {
				if similarWords(uw, aw) {
					return true
				}
			}
		}
	}
	return false
}

// similarWords compares two words by character overlap aligned from the
// start, with the longer length as denominator.
func similarWords(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < minSimilarWordLen || len(rb) < minSimilarWordLen {
		return false
	}

	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	overlap := 0
	for i := 0; i < n; i++ {
		if ra[i] == rb[i] {
			overlap++
		}
	}

	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return float64(overlap)/float64(longer) >= similarityThreshold
}
