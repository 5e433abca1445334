package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/kotoba/internal/store"
)

// Factory builds a Provider for one call from a freshly resolved API key.
type Factory func(ctx context.Context, apiKey string) (Provider, error)

// NewProvider creates a Provider from configuration.
// When eventRepo is non-nil the provider is wrapped with logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(cfg.Gemini, cfg.Timeout)
	case ProviderGeminiSDK:
		base, err = NewGenAIProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	// caller → logging → base
	return WithLogging(base, cfg.Provider, eventRepo, logger), nil
}

// NewFactory returns a Factory that applies each resolved key to cfg and
// builds the configured provider.
func NewFactory(cfg Config, eventRepo store.EventRepo, logger *slog.Logger) Factory {
	return func(ctx context.Context, apiKey string) (Provider, error) {
		return NewProvider(ctx, cfg.WithAPIKey(apiKey), eventRepo, logger)
	}
}

// StaticFactory returns a Factory that always yields p. Useful for tests
// and for the mock provider.
func StaticFactory(p Provider) Factory {
	return func(context.Context, string) (Provider, error) {
		return p, nil
	}
}
