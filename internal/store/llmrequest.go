package store

import (
	"context"
	"fmt"

	"github.com/remivoice/remi/internal/llm"
)

// LLMRequestRepo is the durable LLM call log. It satisfies llm.RequestRepo
// so the logging decorator can write through it.
type LLMRequestRepo struct {
	db dbtx
}

var _ llm.RequestRepo = (*LLMRequestRepo)(nil)

// AppendRequest records one LLM API call.
func (r *LLMRequestRepo) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose, rec.InputTokens, rec.OutputTokens,
		rec.LatencyMs, boolToInt(rec.Success), rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

// UsageByModel aggregates token usage per model for the spend report.
type UsageByModel struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// Usage returns per-model aggregates over the whole request log.
func (r *LLMRequestRepo) Usage(ctx context.Context) ([]UsageByModel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_requests
		GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []UsageByModel
	for rows.Next() {
		var u UsageByModel
		if err := rows.Scan(&u.Model, &u.Requests, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
