package llm

// ModelCost is USD per one million tokens, split by direction.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost totals the USD cost for one call's token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns pricing for a model id, or nil when the table has no
// row for it. The spend report prints a dash for unknown models rather
// than guessing.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the model families Remi can actually be configured to
// use: the small fast tiers plus their alias targets. Prices from
// models.dev, last checked 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Gemini, the default provider.
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-flash-latest":   {0.3, 2.5},

	// Anthropic.
	"claude-3-5-haiku-latest":   {0.8, 4},
	"claude-haiku-4-5":          {1, 5},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},

	// OpenAI.
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
}
