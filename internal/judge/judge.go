package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"text/template"

	"github.com/remivoice/remi/internal/llm"
	"github.com/remivoice/remi/internal/match"
)

// Config holds configuration for the LLM answer judge.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0,
	}
}

// Judge asks an LLM whether a spoken answer is semantically equivalent to
// any canonical answer. It implements match.SemanticJudge. Every failure
// mode maps to JudgeUnknown so the matcher can fall through to its lexical
// layer; the judge never halts a session.
type Judge struct {
	provider llm.Provider
	cfg      Config
	log      *slog.Logger
}

// New creates an LLM-backed answer judge.
func New(provider llm.Provider, cfg Config, log *slog.Logger) *Judge {
	return &Judge{provider: provider, cfg: cfg, log: log}
}

var _ match.SemanticJudge = (*Judge)(nil)

// verdictOutput is the raw structured LLM response.
type verdictOutput struct {
	Equivalent bool   `json:"equivalent"`
	Reasoning  string `json:"reasoning"`
}

// Equivalent poses the equivalence question to the LLM and parses the reply
// into a tagged result at this boundary. Nothing downstream re-parses text.
func (j *Judge) Equivalent(ctx context.Context, userText string, answers []string) match.JudgeResult {
	ctx = llm.WithPurpose(ctx, "semantic-judge")

	userMsg, err := buildJudgeMessage(userText, answers)
	if err != nil {
		j.log.Warn("build judge prompt", "error", err)
		return match.JudgeUnknown
	}

	req := llm.Request{
		System: judgeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      VerdictSchema,
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
	}

	resp, err := j.provider.Generate(ctx, req)
	if err != nil {
		j.log.Warn("semantic judge unavailable", "error", err)
		return match.JudgeUnknown
	}

	var out verdictOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		// Some models ignore the schema and reply in prose. Salvage an
		// explicit keyword verdict before giving up.
		return parseLooseVerdict(string(resp.Content))
	}
	if out.Equivalent {
		return match.JudgeYes
	}
	return match.JudgeNo
}

// parseLooseVerdict extracts a verdict from free text. Only unambiguous
// keyword hits count; anything else is no verdict.
func parseLooseVerdict(text string) match.JudgeResult {
	t := strings.ToLower(strings.TrimSpace(text))

	switch t {
	case "true", `"true"`:
		return match.JudgeYes
	case "false", `"false"`:
		return match.JudgeNo
	}

	positive := containsAny(t, "correct", "right", "valid")
	negative := containsAny(t, "incorrect", "wrong", "invalid")

	// "incorrect" contains "correct"; a negative keyword wins because every
	// negative form embeds its positive counterpart.
	switch {
	case negative:
		return match.JudgeNo
	case positive:
		return match.JudgeYes
	default:
		return match.JudgeUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const judgeSystemPrompt = `You judge whether a spoken answer is semantically equivalent to any of the expected answers for a memory-check question.

Consider synonyms, informal phrasing, and natural language variation. Ignore capitalization, punctuation, and spacing differences. Treat singular and plural forms as equivalent. Be lenient with exact wording but strict with meaning.`

var judgeUserTemplate = template.Must(template.New("judge").Parse(`Spoken answer: "{{.UserText}}"
Expected answers:
{{range .Answers}}- {{.}}
{{end}}
Is the spoken answer semantically equivalent to any expected answer?`))

func buildJudgeMessage(userText string, answers []string) (string, error) {
	var buf bytes.Buffer
	err := judgeUserTemplate.Execute(&buf, struct {
		UserText string
		Answers  []string
	}{userText, answers})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
