package tutor

import (
	"time"

	"github.com/abhisek/kotoba/internal/llm"
)

// Config controls sampling parameters and the per-call deadline.
type Config struct {
	// Timeout bounds every generation call. Default: 30s.
	Timeout time.Duration

	Exercises  llm.GenerationConfig
	Vocabulary llm.GenerationConfig
	Feedback   llm.GenerationConfig
}

// DefaultConfig returns the standard sampling parameters per operation.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Exercises: llm.GenerationConfig{
			Temperature:     0.5,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2000,
		},
		Vocabulary: llm.GenerationConfig{
			Temperature:     0.3,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1500,
		},
		Feedback: llm.GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 300,
		},
	}
}
