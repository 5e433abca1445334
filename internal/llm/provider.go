package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Provider is the core abstraction for text generation.
// Consumers call Generate with a Request and receive the model's raw text.
type Provider interface {
	// Generate sends a prompt to the model and returns the first candidate's
	// text. Failures are returned as the typed errors in errors.go.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is an optional system instruction. Providers without a
	// dedicated field prepend it to the prompt.
	System string

	// Prompt is the single user turn.
	Prompt string

	// Config holds the sampling parameters.
	Config GenerationConfig

	// JSON asks for a JSON-only reply on providers that have a switch for
	// it. The REST Gemini provider relies on the prompt alone.
	JSON bool
}

// GenerationConfig holds the sampling controls sent with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature" validate:"gte=0,lte=2"`
	TopK            int     `json:"topK" validate:"gt=0"`
	TopP            float64 `json:"topP" validate:"gte=0,lte=1"`
	MaxOutputTokens int     `json:"maxOutputTokens" validate:"gt=0"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks that every parameter is inside its accepted range.
// Returns an error wrapping ErrInvalidInput otherwise.
func (c GenerationConfig) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: generation config: %v", ErrInvalidInput, err)
	}
	return nil
}

// Response holds the model's output.
type Response struct {
	// Text is the generated text of the first candidate, unmodified.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "safety"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}

// promptWithSystem joins the system instruction and prompt for providers
// that only take a single text turn.
func promptWithSystem(req Request) string {
	if req.System == "" {
		return req.Prompt
	}
	return req.System + "\n\n" + req.Prompt
}
