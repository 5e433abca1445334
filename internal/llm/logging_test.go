package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/kotoba/internal/store"
)

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Text:  `{"words":[]}`,
		Usage: Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	})
	repo := &recordingEventRepo{}
	p := WithLogging(mock, ProviderMock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeVocabulary)
	resp, err := p.Generate(ctx, Request{
		System: "tutor",
		Prompt: "テキスト",
		Config: GenerationConfig{Temperature: 0.3, TopK: 40, TopP: 0.95, MaxOutputTokens: 1500},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `{"words":[]}` {
		t.Fatalf("unexpected text %q", resp.Text)
	}

	if len(repo.events) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != PurposeVocabulary || !e.Success || e.InputTokens != 10 || e.OutputTokens != 20 {
		t.Errorf("event = %+v", e)
	}
	if e.Provider != ProviderMock || e.Model != "mock" {
		t.Errorf("provider/model = %q/%q", e.Provider, e.Model)
	}
	if e.RequestID == "" {
		t.Error("expected a request ID")
	}
	if !strings.Contains(e.RequestBody, "[system]\ntutor") || !strings.Contains(e.RequestBody, "テキスト") ||
		!strings.Contains(e.RequestBody, `"maxOutputTokens":1500`) {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != `{"words":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	apiErr := &APIError{StatusCode: 403, Message: "quota exceeded"}
	mock := NewMockProvider(MockResponse{Err: apiErr})
	repo := &recordingEventRepo{}
	p := WithLogging(mock, ProviderGemini, repo, nil)

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, apiErr) {
		t.Fatalf("expected API error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("events = %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_LogFailureDoesNotFailCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	repo := &recordingEventRepo{err: errors.New("disk full")}
	p := WithLogging(mock, ProviderMock, repo, nil)

	resp, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("logging failure leaked: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	t.Run("gemini default without key", func(t *testing.T) {
		_, err := NewProvider(ctx, cfg, nil, nil)
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("gemini with logging", func(t *testing.T) {
		p, err := NewProvider(ctx, cfg.WithAPIKey("AIza-test"), &recordingEventRepo{}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := p.(*LoggingProvider); !ok {
			t.Fatalf("expected *LoggingProvider, got %T", p)
		}
		if p.ModelID() != "gemini-2.0-flash" {
			t.Fatalf("ModelID = %q", p.ModelID())
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		c := cfg
		c.Provider = "palm"
		if _, err := NewProvider(ctx, c, nil, nil); err == nil {
			t.Fatal("expected error for unknown provider")
		}
	})

	t.Run("mock", func(t *testing.T) {
		c := cfg
		c.Provider = ProviderMock
		p, err := NewProvider(ctx, c, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if p.ModelID() != "mock" {
			t.Fatalf("ModelID = %q", p.ModelID())
		}
	})
}

func TestNewFactoryAppliesKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	f := NewFactory(cfg, nil, nil)

	if _, err := f(context.Background(), ""); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for empty key, got %v", err)
	}
	p, err := f(context.Background(), "sk-test")
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	c := cfg.WithAPIKey("AIza-k").WithModel("gemini-2.5-flash").WithBaseURL("http://localhost:9999")
	if c.Gemini.APIKey != "AIza-k" || c.APIKey() != "AIza-k" {
		t.Errorf("api key not applied: %+v", c.Gemini)
	}
	if c.Gemini.Model != "gemini-2.5-flash" || c.Gemini.BaseURL != "http://localhost:9999" {
		t.Errorf("model/base not applied: %+v", c.Gemini)
	}
	if cfg.Gemini.APIKey != "" {
		t.Error("WithAPIKey mutated the receiver")
	}
	if got := cfg.WithModel(""); got.Gemini.Model != "gemini-flash" {
		t.Errorf("empty model replaced default: %q", got.Gemini.Model)
	}

	bad := cfg
	bad.Timeout = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.0-flash"); c == nil || c.InputPerMTok != 0.1 {
		t.Fatalf("gemini-2.0-flash cost = %+v", c)
	}
	if c := LookupCost("google/gemini-2.0-flash-001"); c == nil {
		t.Fatal("expected vendor-prefixed fallback")
	}
	if c := LookupCost("unknown-model"); c != nil {
		t.Fatalf("expected nil, got %+v", c)
	}
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}
	if got := c.Cost(1_000_000, 500_000); got != 2 {
		t.Fatalf("Cost = %v, want 2", got)
	}
}
