// Package settings adapts the settings store, environment and config file
// into the credential and level sources used by the tutor client.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
)

// Source names where a credential came from.
type Source string

const (
	SourceNone   Source = "none"
	SourceStore  Source = "store"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
)

// ErrInvalidKey is returned by ValidateAPIKey.
var ErrInvalidKey = errors.New("invalid API key")

// geminiKeyPrefix is the prefix every Google API key carries.
const geminiKeyPrefix = "AIza"

// StoreKey returns the settings key holding the API key for provider.
func StoreKey(provider string) string {
	switch provider {
	case llm.ProviderGemini, llm.ProviderGeminiSDK, "":
		return store.KeyAPIKey
	}
	return provider + "_api_key"
}

// EnvVars returns the environment variables consulted for provider, in
// priority order.
func EnvVars(provider string) []string {
	switch provider {
	case llm.ProviderGemini, llm.ProviderGeminiSDK, "":
		return []string{"KOTOBA_GEMINI_API_KEY", "GEMINI_API_KEY"}
	case llm.ProviderAnthropic:
		return []string{"KOTOBA_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}
	case llm.ProviderOpenAI:
		return []string{"KOTOBA_OPENAI_API_KEY", "OPENAI_API_KEY"}
	case llm.ProviderOpenRouter:
		return []string{"KOTOBA_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}
	}
	return nil
}

// ValidateAPIKey rejects empty keys and, for Gemini providers, keys that do
// not look like Google API keys.
func ValidateAPIKey(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	switch provider {
	case llm.ProviderGemini, llm.ProviderGeminiSDK:
		if !strings.HasPrefix(key, geminiKeyPrefix) {
			return fmt.Errorf("%w: Gemini keys start with %q", ErrInvalidKey, geminiKeyPrefix)
		}
	}
	return nil
}

// CredentialChain resolves the API key for one provider from the settings
// store, then the environment, then the config file.
type CredentialChain struct {
	settings store.SettingsRepo
	provider string
	fileKey  string
	getenv   func(string) string
}

// NewCredentialChain creates a chain. settings may be nil when no store is
// open; fileKey is the llm.api_key value from the config file.
func NewCredentialChain(settings store.SettingsRepo, provider, fileKey string) *CredentialChain {
	return &CredentialChain{
		settings: settings,
		provider: provider,
		fileKey:  strings.TrimSpace(fileKey),
		getenv:   os.Getenv,
	}
}

// APIKey returns the first non-empty key in the chain, or "" when none is set.
func (c *CredentialChain) APIKey(ctx context.Context) (string, error) {
	key, _, err := c.Resolve(ctx)
	return key, err
}

// Resolve returns the key and where it came from.
func (c *CredentialChain) Resolve(ctx context.Context) (string, Source, error) {
	if c.settings != nil {
		v, ok, err := c.settings.Get(ctx, StoreKey(c.provider))
		if err != nil {
			return "", SourceNone, fmt.Errorf("read stored key: %w", err)
		}
		if v = strings.TrimSpace(v); ok && v != "" {
			return v, SourceStore, nil
		}
	}
	for _, name := range EnvVars(c.provider) {
		if v := strings.TrimSpace(c.getenv(name)); v != "" {
			return v, SourceEnv, nil
		}
	}
	if c.fileKey != "" {
		return c.fileKey, SourceConfig, nil
	}
	return "", SourceNone, nil
}

// SaveAPIKey validates key and stores it for provider.
func SaveAPIKey(ctx context.Context, settings store.SettingsRepo, provider, key string) error {
	if err := ValidateAPIKey(provider, key); err != nil {
		return err
	}
	return settings.Set(ctx, StoreKey(provider), strings.TrimSpace(key))
}

// ClearAPIKey removes the stored key for provider.
func ClearAPIKey(ctx context.Context, settings store.SettingsRepo, provider string) error {
	return settings.Delete(ctx, StoreKey(provider))
}

// MaskKey hides all but the first and last four characters of key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
