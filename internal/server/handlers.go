package server

import (
	"net/http"
	"time"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/script"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type textRequest struct {
	Text  string `json:"text" validate:"required"`
	Level string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// ExercisesResponse is the reply of POST /v1/exercises. On failure Exercises
// holds the placeholder set.
type ExercisesResponse struct {
	Success   bool              `json:"success"`
	Exercises tutor.ExerciseSet `json:"exercises"`
	Error     string            `json:"error,omitempty"`
	Kind      string            `json:"kind,omitempty"`
}

// VocabularyResponse is the reply of POST /v1/vocabulary.
type VocabularyResponse struct {
	Success    bool                 `json:"success"`
	Vocabulary tutor.VocabularyList `json:"vocabulary"`
	NewWords   int                  `json:"newWords"`
	Error      string               `json:"error,omitempty"`
	Kind       string               `json:"kind,omitempty"`
}

type evaluateRequest struct {
	Question      string `json:"question" validate:"required"`
	Answer        string `json:"answer" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

// EvaluateResponse is the reply of POST /v1/evaluate.
type EvaluateResponse struct {
	Success  bool   `json:"success"`
	Feedback string `json:"feedback"`
	Kind     string `json:"kind,omitempty"`
}

type progressRequest struct {
	WordsLearned int `json:"wordsLearned" validate:"gte=0"`
}

// StatsResponse is the reply of GET /v1/stats.
type StatsResponse struct {
	APIUsage      int64      `json:"apiUsage"`
	LastUsed      *time.Time `json:"lastUsed,omitempty"`
	WordsLearned  int64      `json:"wordsLearned"`
	ExercisesDone int64      `json:"exercisesDone"`
	SavedWords    int        `json:"savedWords"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, script.Classify(req.Text))
}

// level returns the request level or the configured one.
func (s *Server) level(r *http.Request, requested string) tutor.Level {
	if requested != "" {
		if l, err := tutor.ParseLevel(requested); err == nil {
			return l
		}
	}
	if s.deps.Levels != nil {
		l, err := s.deps.Levels.Level(r.Context())
		if err == nil {
			return l
		}
		s.logger.WarnContext(r.Context(), "failed to resolve level", "error", err)
	}
	return tutor.DefaultLevel
}

// requireJapanese rejects text without Japanese script before any API call.
func requireJapanese(w http.ResponseWriter, r *http.Request, text string) bool {
	if script.ContainsJapanese(text) {
		return true
	}
	respondError(w, r, http.StatusUnprocessableEntity, llm.KindInvalidInput, "text contains no Japanese script")
	return false
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeRequest(w, r, &req) || !requireJapanese(w, r, req.Text) {
		return
	}

	res, err := s.deps.Tutor.RequestExercises(r.Context(), req.Text, s.level(r, req.Level))
	if err != nil {
		kind := llm.KindOf(err)
		s.logger.WarnContext(r.Context(), "exercises failed", "kind", kind, "error", err)
		respondJSON(w, statusFor(kind), ExercisesResponse{
			Exercises: tutor.PlaceholderExercises(err),
			Error:     tutor.FailureMessage(err),
			Kind:      string(kind),
		})
		return
	}
	respondJSON(w, http.StatusOK, ExercisesResponse{Success: true, Exercises: res.Value})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeRequest(w, r, &req) || !requireJapanese(w, r, req.Text) {
		return
	}

	res, err := s.deps.Tutor.RequestVocabulary(r.Context(), req.Text, s.level(r, req.Level))
	if err != nil {
		kind := llm.KindOf(err)
		s.logger.WarnContext(r.Context(), "vocabulary failed", "kind", kind, "error", err)
		respondJSON(w, statusFor(kind), VocabularyResponse{
			Vocabulary: tutor.EmptyVocabulary(err),
			Error:      tutor.FailureMessage(err),
			Kind:       string(kind),
		})
		return
	}

	var added int
	if s.deps.Vocabulary != nil && len(res.Value.Words) > 0 {
		added, err = s.deps.Vocabulary.SaveWords(r.Context(), res.Value.ReviewWords())
		if err != nil {
			s.logger.WarnContext(r.Context(), "failed to save vocabulary", "error", err)
		}
	}
	respondJSON(w, http.StatusOK, VocabularyResponse{Success: true, Vocabulary: res.Value, NewWords: added})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	res, err := s.deps.Tutor.EvaluateAnswer(r.Context(), req.Question, req.Answer, req.CorrectAnswer)
	if err != nil {
		kind := llm.KindOf(err)
		s.logger.WarnContext(r.Context(), "evaluation failed", "kind", kind, "error", err)
		respondJSON(w, statusFor(kind), EvaluateResponse{
			Feedback: tutor.FailureMessage(err),
			Kind:     string(kind),
		})
		return
	}
	respondJSON(w, http.StatusOK, EvaluateResponse{Success: true, Feedback: res.Value})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := s.deps.Counters.RecordProgress(r.Context(), req.WordsLearned); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to record progress", "error", err)
		respondError(w, r, http.StatusInternalServerError, llm.KindUnknown, "failed to record progress")
		return
	}
	progress, err := s.deps.Counters.Progress(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to read progress", "error", err)
		respondError(w, r, http.StatusInternalServerError, llm.KindUnknown, "failed to read progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := collectStats(r, s.deps.Counters, s.deps.Vocabulary)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to read stats", "error", err)
		respondError(w, r, http.StatusInternalServerError, llm.KindUnknown, "failed to read stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func collectStats(r *http.Request, counters store.CounterRepo, vocab store.VocabularyRepo) (StatsResponse, error) {
	ctx := r.Context()
	usage, err := counters.UsageStats(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	progress, err := counters.Progress(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	out := StatsResponse{
		APIUsage:      usage.Count,
		LastUsed:      usage.LastUsed,
		WordsLearned:  progress.WordsLearned,
		ExercisesDone: progress.ExercisesDone,
	}
	if vocab != nil {
		if out.SavedWords, err = vocab.Count(ctx); err != nil {
			return StatsResponse{}, err
		}
	}
	return out, nil
}
