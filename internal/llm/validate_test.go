package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// verdictSchema mirrors the answer-judge contract: a required boolean
// verdict, required reasoning, and an optional confidence grade.
func verdictSchema() *Schema {
	return &Schema{
		Name:        "answer-verdict",
		Description: "Whether a spoken answer matches an expected one",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"equivalent": map[string]any{"type": "boolean"},
				"reasoning":  map[string]any{"type": "string"},
				"confidence": map[string]any{
					"type": "string",
					"enum": []any{"low", "medium", "high"},
				},
			},
			"required": []any{"equivalent", "reasoning"},
		},
	}
}

func TestValidateAcceptsConformingVerdict(t *testing.T) {
	raw := json.RawMessage(`{"equivalent":true,"reasoning":"park and the park match","confidence":"high"}`)
	if err := validateContent(verdictSchema(), raw); err != nil {
		t.Fatalf("validateContent: %v", err)
	}
}

func TestValidateAcceptsMissingOptionalField(t *testing.T) {
	raw := json.RawMessage(`{"equivalent":false,"reasoning":"different places"}`)
	if err := validateContent(verdictSchema(), raw); err != nil {
		t.Fatalf("validateContent: %v", err)
	}
}

func TestValidateRejectsMissingVerdict(t *testing.T) {
	raw := json.RawMessage(`{"reasoning":"no verdict given"}`)
	err := validateContent(verdictSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %T (%v), want *ErrInvalidResponse", err, err)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	raw := json.RawMessage(`{"equivalent":"yes","reasoning":"stringly typed"}`)
	err := validateContent(verdictSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %T (%v), want *ErrInvalidResponse", err, err)
	}
}

func TestValidateRejectsUnknownConfidence(t *testing.T) {
	raw := json.RawMessage(`{"equivalent":true,"reasoning":"ok","confidence":"certain"}`)
	err := validateContent(verdictSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %T (%v), want *ErrInvalidResponse", err, err)
	}
}

func TestValidateRejectsProseReply(t *testing.T) {
	// Models sometimes answer the judge prompt in plain English.
	raw := json.RawMessage(`Yes, those mean the same thing.`)
	err := validateContent(verdictSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %T (%v), want *ErrInvalidResponse", err, err)
	}
	if string(inv.Content) != `Yes, those mean the same thing.` {
		t.Fatalf("offending content not preserved: %s", inv.Content)
	}
}

func TestValidateRejectsEmptyReply(t *testing.T) {
	if err := validateContent(verdictSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected an error for an empty reply")
	}
}

func TestValidateNilSchemaPassesAnything(t *testing.T) {
	raw := json.RawMessage(`"Welcome back, let's start today's memory check."`)
	if err := validateContent(nil, raw); err != nil {
		t.Fatalf("validateContent: %v", err)
	}
}

func TestValidateNestedDefinition(t *testing.T) {
	schema := &Schema{
		Name:        "session-recap",
		Description: "Structured recap of a finished session",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"patient": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"lines": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"patient", "lines"},
		},
	}

	valid := json.RawMessage(`{"patient":{"name":"Margaret"},"lines":["Great session today","Five correct answers"]}`)
	if err := validateContent(schema, valid); err != nil {
		t.Fatalf("validateContent: %v", err)
	}

	invalid := json.RawMessage(`{"patient":{"name":"Margaret"},"lines":[1,2]}`)
	if err := validateContent(schema, invalid); err == nil {
		t.Fatal("expected an error for non-string lines")
	}
}
