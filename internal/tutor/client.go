package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/kotoba/internal/llm"
)

// ErrEmptyText is returned when the text to analyze is blank.
var ErrEmptyText = fmt.Errorf("%w: text is empty", llm.ErrInvalidInput)

// CredentialStore resolves the API key for each call.
// An empty key with a nil error means no key is configured.
type CredentialStore interface {
	APIKey(ctx context.Context) (string, error)
}

// UsageRecorder records one successful generation.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, at time.Time) error
}

// Client turns Japanese text into exercises, vocabulary and feedback by
// prompting a generation endpoint. It is safe for concurrent use.
type Client struct {
	creds   CredentialStore
	factory llm.Factory
	usage   UsageRecorder
	config  Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a Client. usage may be nil to skip accounting.
func NewClient(creds CredentialStore, factory llm.Factory, usage UsageRecorder, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		creds:   creds,
		factory: factory,
		usage:   usage,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// RequestExercises asks for multiple-choice exercises about text.
func (c *Client) RequestExercises(ctx context.Context, text string, level Level) (*Result[ExerciseSet], error) {
	resp, err := c.generate(ctx, llm.PurposeExercises, c.config.Exercises, func() (string, error) {
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyText
		}
		return buildExercisesPrompt(text, orDefault(level))
	})
	if err != nil {
		return nil, fmt.Errorf("request exercises: %w", err)
	}

	var set ExerciseSet
	if err := llm.DecodeJSON(resp.Text, ExerciseSchema, &set); err != nil {
		return nil, fmt.Errorf("request exercises: %w", err)
	}
	if err := checkAnswers(set); err != nil {
		return nil, fmt.Errorf("request exercises: %w", &llm.MalformedPayloadError{Content: resp.Text, Err: err})
	}

	c.recordUsage(ctx, llm.PurposeExercises)
	return &Result[ExerciseSet]{RawText: resp.Text, Value: set, Usage: resp.Usage, Model: resp.Model}, nil
}

// RequestVocabulary asks for the notable vocabulary of text.
func (c *Client) RequestVocabulary(ctx context.Context, text string, level Level) (*Result[VocabularyList], error) {
	resp, err := c.generate(ctx, llm.PurposeVocabulary, c.config.Vocabulary, func() (string, error) {
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyText
		}
		return buildVocabularyPrompt(text, orDefault(level))
	})
	if err != nil {
		return nil, fmt.Errorf("request vocabulary: %w", err)
	}

	var list VocabularyList
	if err := llm.DecodeJSON(resp.Text, VocabularySchema, &list); err != nil {
		return nil, fmt.Errorf("request vocabulary: %w", err)
	}
	if list.Words == nil {
		list.Words = []Word{}
	}

	c.recordUsage(ctx, llm.PurposeVocabulary)
	return &Result[VocabularyList]{RawText: resp.Text, Value: list, Usage: resp.Usage, Model: resp.Model}, nil
}

// EvaluateAnswer asks for short free-text feedback on a learner's answer.
func (c *Client) EvaluateAnswer(ctx context.Context, question, userAnswer, correctAnswer string) (*Result[string], error) {
	resp, err := c.generate(ctx, llm.PurposeFeedback, c.config.Feedback, func() (string, error) {
		if strings.TrimSpace(question) == "" {
			return "", fmt.Errorf("%w: question is empty", llm.ErrInvalidInput)
		}
		return buildFeedbackPrompt(question, userAnswer, correctAnswer)
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	feedback := strings.TrimSpace(resp.Text)
	if feedback == "" {
		return nil, fmt.Errorf("evaluate answer: %w",
			&llm.MalformedPayloadError{Content: resp.Text, Err: errors.New("empty feedback")})
	}

	c.recordUsage(ctx, llm.PurposeFeedback)
	return &Result[string]{RawText: resp.Text, Value: feedback, Usage: resp.Usage, Model: resp.Model}, nil
}

// generate runs the shared steps: resolve the key, build the prompt,
// validate parameters and execute one request under the deadline.
func (c *Client) generate(ctx context.Context, purpose string, gen llm.GenerationConfig, prompt func() (string, error)) (*llm.Response, error) {
	key, err := c.creds.APIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("read API key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return nil, llm.ErrMissingCredential
	}

	text, err := prompt()
	if err != nil {
		return nil, err
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	provider, err := c.factory(ctx, key)
	if err != nil {
		if llm.KindOf(err) == llm.KindUnknown {
			err = &llm.TransportError{Err: err}
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, purpose), c.config.Timeout)
	defer cancel()

	c.logger.DebugContext(ctx, "sending generation request",
		"purpose", purpose, "model", provider.ModelID(), "prompt_chars", len(text))

	start := time.Now()
	resp, err := provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Prompt: text,
		Config: gen,
		JSON:   purpose != llm.PurposeFeedback,
	})
	if err != nil {
		if llm.KindOf(err) == llm.KindUnknown {
			err = &llm.TransportError{Err: err}
		}
		c.logger.DebugContext(ctx, "generation failed",
			"purpose", purpose, "kind", llm.KindOf(err), "error", err)
		return nil, err
	}

	c.logger.InfoContext(ctx, "generation succeeded",
		"purpose", purpose,
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// recordUsage counts one success. Failures are logged and never surface.
func (c *Client) recordUsage(ctx context.Context, purpose string) {
	if c.usage == nil {
		return
	}
	if err := c.usage.RecordUsage(ctx, c.now()); err != nil {
		c.logger.WarnContext(ctx, "failed to record API usage", "purpose", purpose, "error", err)
	}
}

// checkAnswers rejects multiple-choice exercises whose answer index does
// not point at an option.
func checkAnswers(set ExerciseSet) error {
	for i, e := range set.Exercises {
		if e.Type != ExerciseMultipleChoice {
			continue
		}
		if e.CorrectAnswer < 0 || e.CorrectAnswer >= len(e.Options) {
			return fmt.Errorf("exercise %d: correctAnswer %d out of range for %d options",
				i, e.CorrectAnswer, len(e.Options))
		}
	}
	return nil
}

func orDefault(level Level) Level {
	if strings.TrimSpace(string(level)) == "" {
		return DefaultLevel
	}
	return level
}
