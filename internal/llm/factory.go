package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured provider wrapped in its decorators,
// caller -> retry -> logging -> base. repo may be nil when no durable
// request log is wanted.
func NewProvider(ctx context.Context, cfg Config, log *slog.Logger, repo RequestRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, log, repo)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from REMI_* environment variables,
// falling back to discovery of standard API key variables. Returns an error
// when no provider is configured; callers are expected to run degraded
// without one.
func NewProviderFromEnv(ctx context.Context, log *slog.Logger, repo RequestRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, log, repo)
}

// expandModelAlias resolves a short configured name against a provider's
// alias table. Unknown names pass through so exact model ids keep working.
func expandModelAlias(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
