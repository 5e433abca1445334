package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

type brokenSettings struct{ store.SettingsRepo }

func (brokenSettings) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func TestCredentialChain_Precedence(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	chain := NewCredentialChain(st.Settings(), llm.ProviderGemini, "AIzaFromFile")
	chain.getenv = envMap(map[string]string{
		"GEMINI_API_KEY":        "AIzaFromGeneric",
		"KOTOBA_GEMINI_API_KEY": "AIzaFromKotoba",
	})

	key, src, err := chain.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaFromKotoba", key)
	assert.Equal(t, SourceEnv, src)

	require.NoError(t, SaveAPIKey(ctx, st.Settings(), llm.ProviderGemini, " AIzaStored "))
	key, src, err = chain.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaStored", key)
	assert.Equal(t, SourceStore, src)

	require.NoError(t, ClearAPIKey(ctx, st.Settings(), llm.ProviderGemini))
	chain.getenv = envMap(nil)
	key, src, err = chain.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaFromFile", key)
	assert.Equal(t, SourceConfig, src)
}

func TestCredentialChain_Empty(t *testing.T) {
	chain := NewCredentialChain(nil, llm.ProviderGemini, "  ")
	chain.getenv = envMap(map[string]string{"GEMINI_API_KEY": "   "})

	key, err := chain.APIKey(context.Background())
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestCredentialChain_ProviderSpecific(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	require.NoError(t, st.Settings().Set(ctx, store.KeyAPIKey, "AIzaGemini"))

	chain := NewCredentialChain(st.Settings(), llm.ProviderAnthropic, "")
	chain.getenv = envMap(map[string]string{"ANTHROPIC_API_KEY": "sk-ant-123"})

	key, err := chain.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-123", key)
}

func TestCredentialChain_StoreError(t *testing.T) {
	chain := NewCredentialChain(brokenSettings{}, llm.ProviderGemini, "AIzaFile")
	_, err := chain.APIKey(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		provider string
		key      string
		wantErr  bool
	}{
		{llm.ProviderGemini, "AIzaSyExample", false},
		{llm.ProviderGeminiSDK, "AIzaSyExample", false},
		{llm.ProviderGemini, "sk-123", true},
		{llm.ProviderGemini, "", true},
		{llm.ProviderOpenAI, "sk-123", false},
		{llm.ProviderAnthropic, "   ", true},
	}
	for _, tt := range tests {
		err := ValidateAPIKey(tt.provider, tt.key)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidKey, "%s/%q", tt.provider, tt.key)
		} else {
			assert.NoError(t, err, "%s/%q", tt.provider, tt.key)
		}
	}
}

func TestSaveAPIKey_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	err := SaveAPIKey(ctx, st.Settings(), llm.ProviderGemini, "not-a-key")
	require.ErrorIs(t, err, ErrInvalidKey)

	_, ok, err := st.Settings().Get(ctx, store.KeyAPIKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "AIza*****wxyz", MaskKey("AIza12345wxyz"))
	assert.Equal(t, "****", MaskKey("abcd"))
	assert.Equal(t, "", MaskKey(""))
}

func TestStoreKey(t *testing.T) {
	assert.Equal(t, "gemini_api_key", StoreKey(llm.ProviderGemini))
	assert.Equal(t, "gemini_api_key", StoreKey(llm.ProviderGeminiSDK))
	assert.Equal(t, "openai_api_key", StoreKey(llm.ProviderOpenAI))
}

func TestLevelSource(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	l, err := NewLevelSource(st.Settings(), "").Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, tutor.LevelIntermediate, l)

	src := NewLevelSource(st.Settings(), "Beginner")
	l, err = src.Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, tutor.LevelBeginner, l)

	l, err = src.SetLevel(ctx, "ADVANCED")
	require.NoError(t, err)
	assert.Equal(t, tutor.LevelAdvanced, l)

	l, err = src.Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, tutor.LevelAdvanced, l)

	_, err = src.SetLevel(ctx, "expert")
	require.ErrorIs(t, err, llm.ErrInvalidInput)
}

func TestLevelSource_IgnoresCorruptStoredValue(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	require.NoError(t, st.Settings().Set(ctx, store.KeyLevel, "N1"))

	l, err := NewLevelSource(st.Settings(), "beginner").Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, tutor.LevelBeginner, l)
}
