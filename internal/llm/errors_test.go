package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"missing credential", ErrMissingCredential, KindMissingCredential},
		{"wrapped missing credential", fmt.Errorf("exercises: %w", ErrMissingCredential), KindMissingCredential},
		{"invalid input", fmt.Errorf("%w: empty text", ErrInvalidInput), KindInvalidInput},
		{"api", &APIError{StatusCode: 429, Message: "quota exceeded"}, KindAPI},
		{"malformed", &MalformedPayloadError{Err: errors.New("bad json")}, KindMalformedPayload},
		{"transport", &TransportError{Err: errors.New("connection refused")}, KindTransport},
		{"transport wrapping deadline", &TransportError{Err: context.DeadlineExceeded}, KindTransport},
		{"bare deadline", context.DeadlineExceeded, KindTransport},
		{"other", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	err := fmt.Errorf("exercises: %w", &APIError{StatusCode: 403, Message: "quota exceeded"})
	if got := MessageOf(err); got != "quota exceeded" {
		t.Fatalf("MessageOf = %q, want %q", got, "quota exceeded")
	}
	if got := MessageOf(nil); got != "" {
		t.Fatalf("MessageOf(nil) = %q, want empty", got)
	}
}

func TestGenerationConfigValidate(t *testing.T) {
	valid := GenerationConfig{Temperature: 0.5, TopK: 40, TopP: 0.95, MaxOutputTokens: 2000}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name string
		mut  func(*GenerationConfig)
	}{
		{"temperature too high", func(c *GenerationConfig) { c.Temperature = 2.5 }},
		{"negative temperature", func(c *GenerationConfig) { c.Temperature = -0.1 }},
		{"zero topK", func(c *GenerationConfig) { c.TopK = 0 }},
		{"topP above one", func(c *GenerationConfig) { c.TopP = 1.2 }},
		{"zero max tokens", func(c *GenerationConfig) { c.MaxOutputTokens = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mut(&c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
