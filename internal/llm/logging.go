package llm

import (
	"context"
	"log/slog"
	"time"
)

// RequestRecord captures one LLM API call for the durable request log.
// Provider is the configured provider name ("gemini", "anthropic",
// "openai"); Model is the concrete model id that served the call.
type RequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestRepo appends LLM request records to a durable log.
type RequestRepo interface {
	AppendRequest(ctx context.Context, rec RequestRecord) error
}

// loggingProvider logs every call and, when a RequestRepo is wired,
// appends a durable record of it.
type loggingProvider struct {
	inner    Provider
	provider string
	log      *slog.Logger
	repo     RequestRepo // may be nil
}

// WithLogging wraps a provider with request logging. provider is the
// configured provider name recorded alongside the model id; repo may be
// nil.
func WithLogging(p Provider, provider string, log *slog.Logger, repo RequestRepo) Provider {
	return &loggingProvider{inner: p, provider: provider, log: log, repo: repo}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	rec := RequestRecord{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}
	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"purpose", purpose,
			"provider", l.provider,
			"model", rec.Model,
			"latency_ms", latencyMs,
			"error", err)
	} else {
		l.log.Debug("llm request",
			"purpose", purpose,
			"provider", l.provider,
			"model", rec.Model,
			"latency_ms", latencyMs,
			"input_tokens", rec.InputTokens,
			"output_tokens", rec.OutputTokens)
	}

	// Record the call but never fail the request over bookkeeping.
	if l.repo != nil {
		if logErr := l.repo.AppendRequest(ctx, rec); logErr != nil {
			l.log.Warn("failed to append llm request record", "error", logErr)
		}
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
