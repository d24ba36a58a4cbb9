package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// and retry middleware (caller → retry → logging → base).
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, sink), cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from READMENTOR_* env vars, falling
// back to bare API key discovery when no provider is configured.
func NewProviderFromEnv(ctx context.Context, sink EventSink) (Provider, error) {
	cfg := ConfigFromEnv()
	if !configured(cfg) {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM API key configured")
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, sink)
}

// configured reports whether the selected provider has an API key set.
func configured(cfg Config) bool {
	switch cfg.Provider {
	case "anthropic":
		return cfg.Anthropic.APIKey != ""
	case "openai":
		return cfg.OpenAI.APIKey != ""
	case "gemini":
		return cfg.Gemini.APIKey != ""
	case "mock":
		return true
	}
	return false
}
