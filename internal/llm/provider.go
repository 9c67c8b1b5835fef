package llm

import (
	"context"
	"encoding/json"
)

// Provider is the boundary to a hosted language model. Remi keeps its use
// narrow: judging whether a spoken answer means the same thing as a
// canonical one, and phrasing short encouragement lines for the patient.
// Both are single-turn calls, and both must degrade gracefully when the
// model is unreachable, so every caller treats an error as "no answer"
// rather than a session failure.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// requests schema-conforming JSON through its native structured-output
	// mechanism and validates the reply before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the concrete model id this provider targets.
	ModelID() string
}

// Request is one call to the model.
type Request struct {
	// System frames the model's role, e.g. the answer-judge instructions
	// or the gentle-companion phrasing persona.
	System string

	// Messages is the turn history. Remi's calls are single-turn, so this
	// is almost always exactly one user message.
	Messages []Message

	// Schema, when set, constrains the reply to schema-conforming JSON.
	// When nil the reply is free text carried as a raw JSON value.
	Schema *Schema

	// MaxTokens caps the reply length. Judge verdicts and phrasing lines
	// are both short, so callers set this low.
	MaxTokens int

	// Temperature in [0, 1]. Verdicts run at 0 for repeatability;
	// phrasing runs warmer so the lines do not repeat verbatim.
	Temperature float64
}

// Message is a single turn in the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the reply must satisfy.
type Schema struct {
	// Name identifies the contract, kebab-case, e.g. "answer-verdict".
	// Providers surface it as the tool or response-format name, and the
	// validator caches compiled schemas under it.
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema body as a plain map.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the reply body. Schema-validated JSON when the request
	// carried a Schema, otherwise the raw text.
	Content json.RawMessage

	// Usage is the token count the provider reported for this call.
	Usage Usage

	// Model is the model that actually served the call, which can be a
	// more specific id than the one requested.
	Model string

	// StopReason is normalized across providers to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one call. It feeds the durable
// request log and the spend report.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
