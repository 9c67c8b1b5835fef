// Package session runs one memory-check session: it serves questions at the
// adaptive difficulty tier, grades spoken answers through the layered
// matcher, and records every exchange.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/emotion"
	"github.com/remivoice/remi/internal/match"
	"github.com/remivoice/remi/internal/memory"
	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/speech"
	"github.com/remivoice/remi/internal/store"
)

// TargetCorrect is the score that completes a session.
const TargetCorrect = 5

// MaxAttempts is the per-question retry limit before the question is skipped.
const MaxAttempts = 3

var (
	ErrAlreadyStarted  = errors.New("session: already started")
	ErrNotStarted      = errors.New("session: not started")
	ErrSessionFinished = errors.New("session: finished")
	ErrNoQuestions     = errors.New("session: question bank is empty")
)

// Deps wires an Engine. Bank, Responder, and Log are required. Judge,
// Conversation, and Progress may be nil; the engine degrades to lexical-only
// matching and in-memory transcripts. ID lets a caller fix the session id
// up front, e.g. to key a per-session conversation log; empty means a
// fresh uuid.
type Deps struct {
	ID           string
	Bank         *quiz.Bank
	Judge        match.SemanticJudge
	Responder    *respond.Responder
	Conversation *memory.Store
	Progress     store.ProgressRepo
	Sessions     store.SessionRepo
	Voice        speech.Synthesizer
	Profile      respond.Profile
	Log          *slog.Logger
}

// Engine is the session state machine. Not safe for concurrent use; callers
// that share an engine serialize access themselves.
type Engine struct {
	deps Deps

	id      string
	phase   Phase
	ctrl    *difficulty.Controller
	current *quiz.Pick
	asked   map[string]bool

	attempt       int // attempts on the current question
	correctCount  int
	totalAnswered int
	skippedCount  int
	turns         []Turn
	startedAt     time.Time
	endedAt       time.Time
}

// New creates an unstarted Engine.
func New(deps Deps) *Engine {
	id := deps.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Engine{
		deps:  deps,
		id:    id,
		phase: PhaseNotStarted,
		ctrl:  difficulty.NewController(),
		asked: make(map[string]bool),
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Tier returns the current nominal difficulty tier.
func (e *Engine) Tier() difficulty.Tier { return e.ctrl.Tier() }

// Turns returns the transcript so far, in order.
func (e *Engine) Turns() []Turn {
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// Start opens the session: phrases the greeting and poses the first
// question. Fails if the session already started or the bank is empty.
func (e *Engine) Start(ctx context.Context) (greeting string, q *PosedQuestion, err error) {
	if e.phase != PhaseNotStarted {
		return "", nil, ErrAlreadyStarted
	}

	pick := e.deps.Bank.Sample(e.ctrl.Tier(), e.asked)
	if pick == nil {
		return "", nil, ErrNoQuestions
	}

	e.startedAt = time.Now().UTC()
	greeting = e.deps.Responder.Greeting(ctx, e.deps.Profile)
	e.say(ctx, greeting)

	e.pose(pick)
	e.phase = PhaseAwaitingAnswer

	e.deps.Log.Info("session started",
		"session_id", e.id,
		"patient", e.deps.Profile.Name,
		"tier", e.ctrl.Tier())

	return greeting, e.posed(), nil
}

// Current returns the question awaiting an answer, or nil.
func (e *Engine) Current() *PosedQuestion {
	if e.phase != PhaseAwaitingAnswer || e.current == nil {
		return nil
	}
	return e.posed()
}

// Submit grades one answer and advances the session. The returned Outcome
// carries the spoken line, the verdict, and the question now awaiting an
// answer (or the session summary when finished).
func (e *Engine) Submit(ctx context.Context, answer string) (*Outcome, error) {
	switch e.phase {
	case PhaseNotStarted:
		return nil, ErrNotStarted
	case PhaseFinished:
		return nil, ErrSessionFinished
	case PhaseEvaluating:
		return nil, fmt.Errorf("session: evaluation already in progress")
	}

	e.phase = PhaseEvaluating
	e.hear(answer)

	// Distress pauses grading entirely. The attempt is not consumed and
	// the question stays posed.
	if emotion.Detect(answer) == emotion.MoodUpset {
		line := e.deps.Responder.Comfort(ctx, e.deps.Profile)
		e.say(ctx, line)
		e.phase = PhaseAwaitingAnswer
		return &Outcome{
			Mood:     emotion.MoodUpset,
			Line:     line,
			Question: e.posed(),
		}, nil
	}

	q := e.current.Question
	verdict := match.Match(ctx, answer, q.Answers, q.Category, e.deps.Judge)
	e.attempt++
	e.totalAnswered++

	out := &Outcome{
		Verdict: verdict,
		Attempt: e.attempt,
	}

	switch verdict {
	case difficulty.VerdictCorrect:
		e.correctCount++
		out.Transition = e.ctrl.Record(verdict)
		out.Line = e.deps.Responder.Correct(ctx, e.deps.Profile, e.correctCount, TargetCorrect)
	case difficulty.VerdictIncorrect:
		out.Transition = e.ctrl.Record(verdict)
		if e.attempt >= MaxAttempts {
			out.Skipped = true
			out.Line = e.deps.Responder.Skip(ctx, e.deps.Profile)
		} else {
			out.Line = e.deps.Responder.Incorrect(ctx, e.deps.Profile, e.attempt, MaxAttempts)
		}
	default: // indeterminate, re-prompt but still bounded by MaxAttempts
		if e.attempt >= MaxAttempts {
			out.Skipped = true
			out.Line = e.deps.Responder.Skip(ctx, e.deps.Profile)
		} else {
			out.Line = e.deps.Responder.Repeat()
		}
	}
	out.CorrectCount = e.correctCount

	e.record(ctx, answer, verdict, out.Skipped, out.Line)
	e.say(ctx, out.Line)

	// Retry: same question, attempt counter intact.
	if verdict != difficulty.VerdictCorrect && !out.Skipped {
		e.phase = PhaseAwaitingAnswer
		out.Question = e.posed()
		return out, nil
	}

	if out.Skipped {
		e.skippedCount++
	}

	if e.correctCount >= TargetCorrect {
		return e.finish(ctx, out, true), nil
	}

	next := e.deps.Bank.Sample(e.ctrl.Tier(), e.asked)
	if next == nil {
		e.deps.Log.Info("question bank exhausted", "session_id", e.id)
		return e.finish(ctx, out, false), nil
	}

	e.pose(next)
	e.phase = PhaseAwaitingAnswer
	out.Question = e.posed()
	return out, nil
}

// Summary reports the session totals. Valid at any phase; EndedAt is zero
// until the session finishes.
func (e *Engine) Summary() Summary {
	return Summary{
		SessionID:     e.id,
		PatientName:   e.deps.Profile.Name,
		StartedAt:     e.startedAt,
		EndedAt:       e.endedAt,
		CorrectCount:  e.correctCount,
		TotalAnswered: e.totalAnswered,
		SkippedCount:  e.skippedCount,
		FinalTier:     e.ctrl.Tier(),
		Completed:     e.correctCount >= TargetCorrect,
	}
}

func (e *Engine) finish(ctx context.Context, out *Outcome, completed bool) *Outcome {
	e.endedAt = time.Now().UTC()
	e.phase = PhaseFinished

	closing := e.deps.Responder.Completion(ctx, e.deps.Profile, completed)
	e.say(ctx, closing)
	out.Line = out.Line + " " + closing

	out.Finished = true
	s := e.Summary()
	out.Summary = &s

	if e.deps.Sessions != nil {
		err := e.deps.Sessions.AppendSession(ctx, store.SessionRecord{
			SessionID:     s.SessionID,
			PatientName:   s.PatientName,
			StartedAt:     s.StartedAt,
			EndedAt:       s.EndedAt,
			CorrectCount:  s.CorrectCount,
			TotalAnswered: s.TotalAnswered,
			SkippedCount:  s.SkippedCount,
			FinalTier:     s.FinalTier.String(),
			Completed:     s.Completed,
		})
		if err != nil {
			e.deps.Log.Warn("failed to record session summary", "session_id", e.id, "error", err)
		}
	}

	e.deps.Log.Info("session finished",
		"session_id", e.id,
		"correct", e.correctCount,
		"answered", e.totalAnswered,
		"skipped", e.skippedCount,
		"completed", completed,
		"final_tier", e.ctrl.Tier())
	return out
}

func (e *Engine) pose(pick *quiz.Pick) {
	e.current = pick
	e.attempt = 0
	e.asked[pick.Question.ID] = true
}

func (e *Engine) posed() *PosedQuestion {
	if e.current == nil {
		return nil
	}
	return &PosedQuestion{
		ID:         e.current.Question.ID,
		Text:       e.current.Question.Text,
		Tier:       e.current.Question.Tier,
		ServedTier: e.current.ServedTier,
	}
}

// record appends the graded turn to the transcript and the progress store.
func (e *Engine) record(ctx context.Context, answer string, verdict difficulty.Verdict, skipped bool, line string) {
	turn := Turn{
		QuestionID:   e.current.Question.ID,
		QuestionText: e.current.Question.Text,
		Tier:         e.current.Question.Tier,
		ServedTier:   e.current.ServedTier,
		Answer:       answer,
		Verdict:      verdict,
		Attempt:      e.attempt,
		Skipped:      skipped,
		Line:         line,
		At:           time.Now().UTC(),
	}
	e.turns = append(e.turns, turn)

	if e.deps.Progress == nil {
		return
	}
	err := e.deps.Progress.Append(ctx, store.ProgressRecord{
		SessionID:    e.id,
		PatientName:  e.deps.Profile.Name,
		QuestionID:   turn.QuestionID,
		QuestionText: turn.QuestionText,
		Tier:         turn.Tier.String(),
		ServedTier:   turn.ServedTier.String(),
		Answer:       answer,
		Verdict:      verdict.String(),
		Attempt:      turn.Attempt,
		Skipped:      skipped,
	})
	if err != nil {
		// Progress is bookkeeping; the session goes on.
		e.deps.Log.Warn("failed to record progress", "session_id", e.id, "error", err)
	}
}

// say voices and records one of Remi's lines.
func (e *Engine) say(ctx context.Context, text string) {
	if e.deps.Voice != nil {
		if err := e.deps.Voice.Speak(ctx, text); err != nil {
			e.deps.Log.Warn("speech synthesis failed", "error", err)
		}
	}
	if e.deps.Conversation == nil {
		return
	}
	if err := e.deps.Conversation.Append(memory.RoleAssistant, text); err != nil {
		e.deps.Log.Warn("failed to append conversation entry", "error", err)
	}
}

func (e *Engine) hear(text string) {
	if e.deps.Conversation == nil {
		return
	}
	if err := e.deps.Conversation.Append(memory.RolePatient, text); err != nil {
		e.deps.Log.Warn("failed to append conversation entry", "error", err)
	}
}
