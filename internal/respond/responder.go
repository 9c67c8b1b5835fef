// Package respond phrases Remi's side of the conversation. Every phrasing
// call has a deterministic canned fallback, so sessions run unchanged when
// no language model is configured or a call fails.
package respond

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/remivoice/remi/internal/llm"
)

// Config holds configuration for LLM phrasing.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults. Phrasing wants a little warmth,
// hence the nonzero temperature.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0.7,
	}
}

// Profile describes the patient the responder is speaking with. Loading the
// record is an external concern; the responder only reads it.
type Profile struct {
	Name      string
	Interests string
	Tone      string // e.g. "gentle"
	Formality string // e.g. "informal"
}

// Responder generates spoken lines for each outcome class. The provider may
// be nil; canned lines are used then and whenever a call errors.
type Responder struct {
	provider llm.Provider
	cfg      Config
	log      *slog.Logger
}

// New creates a Responder. provider may be nil for fully-canned operation.
func New(provider llm.Provider, cfg Config, log *slog.Logger) *Responder {
	return &Responder{provider: provider, cfg: cfg, log: log}
}

// Canned fallback lines, one per call site.
const (
	fallbackGreeting   = "Welcome! I'm Remi, your memory friend. Let's start today's memory check."
	fallbackSkip       = "Let's move on to the next question. You're doing great!"
	fallbackComplete   = "Great job! You've completed all questions successfully!"
	fallbackIncomplete = "Let's try again another time."
	fallbackComfort    = "I'm here for you. Let's play when you're ready."
	fallbackRepeat     = "Could you repeat that?"
)

// fallbackCorrect is cycled by progress so repeated successes don't sound
// identical, while staying deterministic for a given progress count.
var fallbackCorrect = []string{
	"Excellent! That's correct!",
	"Perfect! Well done!",
	"Great job! Keep going!",
	"That's right! You're doing great!",
	"Wonderful! Next question!",
}

// Greeting phrases the session opener.
func (r *Responder) Greeting(ctx context.Context, p Profile) string {
	prompt := fmt.Sprintf(
		"Generate a friendly greeting for a memory check session with %s. "+
			"The greeting should be warm, encouraging, and brief (1-2 sentences). "+
			"Include the name 'Remi' and mention that we're starting today's memory check.",
		displayName(p))
	return r.phrase(ctx, "greeting", prompt, p, fallbackGreeting)
}

// Correct phrases an encouraging line for a correct answer. correctCount and
// target describe progress (e.g. 3 of 5).
func (r *Responder) Correct(ctx context.Context, p Profile, correctCount, target int) string {
	prompt := fmt.Sprintf(
		"Generate a brief, encouraging response for a correct answer in a memory check. "+
			"The response should be positive and motivating (1 sentence). "+
			"Current progress: %d/%d questions correct.",
		correctCount, target)
	fallback := fallbackCorrect[(correctCount-1+len(fallbackCorrect))%len(fallbackCorrect)]
	return r.phrase(ctx, "correct-answer", prompt, p, fallback)
}

// Incorrect phrases a gentle retry prompt. attempt and limit describe the
// per-question retry state (e.g. attempt 2 of 3).
func (r *Responder) Incorrect(ctx context.Context, p Profile, attempt, limit int) string {
	prompt := fmt.Sprintf(
		"Generate a gentle, encouraging response for an incorrect answer in a memory check. "+
			"The response should be supportive and motivate the user to try again (1 sentence). "+
			"Keep it positive and kind. This is attempt %d out of %d.",
		attempt, limit)
	fallback := fmt.Sprintf(
		"That's not quite right, but you're doing great! Let's try again. (Attempt %d/%d)",
		attempt, limit)
	return r.phrase(ctx, "incorrect-answer", prompt, p, fallback)
}

// Skip phrases the move-on line after the retry limit is reached.
func (r *Responder) Skip(ctx context.Context, p Profile) string {
	prompt := "Generate a gentle message for when we're moving on to the next question " +
		"after multiple attempts. The message should be encouraging and supportive (1 sentence)."
	return r.phrase(ctx, "skip-question", prompt, p, fallbackSkip)
}

// Completion phrases the session closer. completed reports whether the
// target score was reached.
func (r *Responder) Completion(ctx context.Context, p Profile, completed bool) string {
	if completed {
		prompt := "Generate a congratulatory message for completing all memory check " +
			"questions successfully. The message should be warm and encouraging (1-2 sentences)."
		return r.phrase(ctx, "session-complete", prompt, p, fallbackComplete)
	}
	prompt := "Generate an encouraging message for when the memory check session ends " +
		"before completion. The message should be supportive and motivate the user to " +
		"try again (1-2 sentences)."
	return r.phrase(ctx, "session-incomplete", prompt, p, fallbackIncomplete)
}

// Comfort phrases a supportive line when the patient sounds upset.
func (r *Responder) Comfort(ctx context.Context, p Profile) string {
	prompt := "The patient sounds upset. Generate a short, comforting line (1 sentence) " +
		"offering to play the memory game whenever they feel ready."
	return r.phrase(ctx, "comfort", prompt, p, fallbackComfort)
}

// Repeat returns the re-prompt line for inaudible or indeterminate answers.
// Always canned; there is nothing to personalize.
func (r *Responder) Repeat() string {
	return fallbackRepeat
}

// phrase runs one generation call, returning fallback on any failure.
func (r *Responder) phrase(ctx context.Context, purpose, prompt string, p Profile, fallback string) string {
	if r.provider == nil {
		return fallback
	}

	ctx = llm.WithPurpose(ctx, purpose)
	resp, err := r.provider.Generate(ctx, llm.Request{
		System: systemPrompt(p),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		r.log.Warn("phrasing unavailable, using canned line", "purpose", purpose, "error", err)
		return fallback
	}

	text := decodeText(resp.Content)
	if text == "" {
		return fallback
	}
	return text
}

// systemPrompt sets Remi's persona, threaded with the patient profile.
func systemPrompt(p Profile) string {
	var b strings.Builder
	b.WriteString("You are Remi, a gentle, patient, kind, encouraging, and empathetic " +
		"memory assistant for an Alzheimer's patient.")
	if p.Interests != "" {
		fmt.Fprintf(&b, " You know the patient enjoys %s.", p.Interests)
	}
	if p.Tone != "" {
		fmt.Fprintf(&b, " Respond with a %s tone.", p.Tone)
	}
	if p.Formality != "" {
		fmt.Fprintf(&b, " Speak with a %s level of formality.", p.Formality)
	}
	b.WriteString(" Be warm, understanding, and easy to follow. Reply with the line " +
		"only, no preamble or quotes.")
	return b.String()
}

func displayName(p Profile) string {
	if p.Name == "" {
		return "the patient"
	}
	return p.Name
}

// decodeText unwraps provider content, which may be a bare string or a
// JSON-encoded string.
func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(strings.Trim(string(raw), `"`))
}
