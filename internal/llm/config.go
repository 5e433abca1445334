package llm

import (
	"fmt"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderGeminiSDK  = "gemini-sdk"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Providers lists every accepted provider name.
var Providers = []string{
	ProviderGemini, ProviderGeminiSDK, ProviderAnthropic,
	ProviderOpenAI, ProviderOpenRouter, ProviderMock,
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "gemini-sdk", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig

	// Timeout is the maximum duration for a single LLM request. Default: 30s.
	Timeout time.Duration
}

// GeminiConfig holds configuration shared by the REST and SDK Gemini providers.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Default: "https://generativelanguage.googleapis.com/v1beta"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string // Optional.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model:   "gemini-flash",
			BaseURL: DefaultGeminiBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "google/gemini-2.0-flash-001",
			BaseURL: DefaultOpenRouterBaseURL,
		},
		Timeout: 30 * time.Second,
	}
}

// WithAPIKey returns a copy of c with key set on the selected provider.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case ProviderGemini, ProviderGeminiSDK:
		c.Gemini.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
	return c
}

// WithModel returns a copy of c with model set on the selected provider.
// An empty model leaves the default in place.
func (c Config) WithModel(model string) Config {
	if model == "" {
		return c
	}
	switch c.Provider {
	case ProviderGemini, ProviderGeminiSDK:
		c.Gemini.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
	return c
}

// WithBaseURL returns a copy of c with the endpoint override set on the
// selected provider. An empty URL leaves the default in place.
func (c Config) WithBaseURL(url string) Config {
	if url == "" {
		return c
	}
	switch c.Provider {
	case ProviderGemini, ProviderGeminiSDK:
		c.Gemini.BaseURL = url
	case ProviderAnthropic:
		c.Anthropic.BaseURL = url
	case ProviderOpenAI:
		c.OpenAI.BaseURL = url
	case ProviderOpenRouter:
		c.OpenRouter.BaseURL = url
	}
	return c
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderGemini, ProviderGeminiSDK:
		return c.Gemini.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

// RequiresKey reports whether the selected provider needs an API key.
func (c Config) RequiresKey() bool {
	return c.Provider != ProviderMock
}

// Validate checks the provider name and timeout. API keys are resolved per
// call and checked by the caller.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderGeminiSDK, ProviderAnthropic,
		ProviderOpenAI, ProviderOpenRouter, ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
