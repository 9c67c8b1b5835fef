package judge

import "github.com/remivoice/remi/internal/llm"

// VerdictSchema is the structured output contract for the answer judge.
var VerdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Semantic equivalence verdict for a spoken quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"equivalent": map[string]any{
				"type":        "boolean",
				"description": "true if the spoken answer matches any expected answer in meaning",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One-sentence justification",
			},
		},
		"required": []any{"equivalent"},
	},
}
