package session

import (
	"time"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/emotion"
)

// Phase represents the current phase of a session.
type Phase int

const (
	PhaseNotStarted     Phase = iota
	PhaseAwaitingAnswer       // A question is posed and unanswered
	PhaseEvaluating           // An answer is being graded
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Turn is one graded exchange, kept in order for the transcript.
type Turn struct {
	QuestionID   string
	QuestionText string
	Tier         difficulty.Tier
	ServedTier   difficulty.Tier
	Answer       string
	Verdict      difficulty.Verdict
	Attempt      int
	Skipped      bool
	Line         string
	At           time.Time
}

// Outcome is what one Submit call produced.
type Outcome struct {
	// Mood is set when the answer was treated as distress rather than
	// graded. No other fields besides Line are meaningful then.
	Mood emotion.Mood

	Verdict      difficulty.Verdict
	Line         string
	Attempt      int
	Skipped      bool
	CorrectCount int

	// Transition is non-nil when this answer moved the difficulty tier.
	Transition *difficulty.Transition

	// Question is the question now awaiting an answer: the next one after
	// a correct answer or a skip, the same one on a retry, nil when the
	// session finished.
	Question *PosedQuestion

	Finished bool
	Summary  *Summary
}

// PosedQuestion is the question as served, with the tier it actually came
// from when the nominal tier was exhausted.
type PosedQuestion struct {
	ID         string
	Text       string
	Tier       difficulty.Tier
	ServedTier difficulty.Tier
}

// Summary wraps up a finished session.
type Summary struct {
	SessionID     string
	PatientName   string
	StartedAt     time.Time
	EndedAt       time.Time
	CorrectCount  int
	TotalAnswered int
	SkippedCount  int
	FinalTier     difficulty.Tier
	Completed     bool // target score reached
}
