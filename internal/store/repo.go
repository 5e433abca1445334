package store

import (
	"context"
	"time"
)

// Well-known settings keys.
const (
	KeyAPIKey   = "gemini_api_key"
	KeyLevel    = "level"
	KeyLastUsed = "last_used"
)

// Well-known counter names.
const (
	CounterAPIUsage      = "api_usage"
	CounterWordsLearned  = "words_learned"
	CounterExercisesDone = "exercises_done"
	counterEventSequence = "event_sequence"
)

// SettingsRepo is a string key-value store.
type SettingsRepo interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// UsageStats reports how often the generation API succeeded.
type UsageStats struct {
	Count    int64      `json:"apiUsage"`
	LastUsed *time.Time `json:"lastUsed,omitempty"`
}

// Progress reports learner progress counters.
type Progress struct {
	WordsLearned  int64 `json:"wordsLearned"`
	ExercisesDone int64 `json:"exercisesDone"`
}

// CounterRepo manages named monotonic counters.
type CounterRepo interface {
	// Increment atomically adds delta to the named counter and returns the
	// new value. Missing counters start at zero.
	Increment(ctx context.Context, name string, delta int64) (int64, error)

	// Value returns the current value of the named counter, zero if unset.
	Value(ctx context.Context, name string) (int64, error)

	// RecordUsage bumps the API usage counter and stores at as the last use.
	RecordUsage(ctx context.Context, at time.Time) error

	// UsageStats returns the usage counter and last use time.
	UsageStats(ctx context.Context) (UsageStats, error)

	// RecordProgress adds wordsLearned to the learned words counter and
	// counts one completed exercise set.
	RecordProgress(ctx context.Context, wordsLearned int) error

	// AddProgress adds wordsLearned and exercisesDone to the progress
	// counters in one transaction.
	AddProgress(ctx context.Context, wordsLearned, exercisesDone int) error

	// Progress returns the learner progress counters.
	Progress(ctx context.Context) (Progress, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM events by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM events by model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns the event with id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// Word is one entry of the vocabulary review list.
type Word struct {
	ID           int
	Kanji        string
	Reading      string
	Meaning      string
	Level        string
	PartOfSpeech string
	Example      string
	SeenCount    int
	AddedAt      time.Time
	LastSeenAt   time.Time
}

// VocabularyRepo manages the vocabulary review list.
type VocabularyRepo interface {
	// SaveWords upserts words keyed by (kanji, reading). Re-saving a word
	// refreshes its meaning and bumps its seen count. Returns the number of
	// words that were new.
	SaveWords(ctx context.Context, words []Word) (int, error)

	// ListWords returns saved words, most recently seen first.
	// level filters by JLPT level when non-empty; limit 0 means no limit.
	ListWords(ctx context.Context, level string, limit int) ([]Word, error)

	// Count returns the number of saved words.
	Count(ctx context.Context) (int, error)
}
