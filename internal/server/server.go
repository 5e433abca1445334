// Package server exposes the tutor client over a local HTTP bridge for the
// browser extension.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 256 << 10

const shutdownTimeout = 10 * time.Second

// Tutor is the subset of tutor.Client the bridge calls.
type Tutor interface {
	RequestExercises(ctx context.Context, text string, level tutor.Level) (*tutor.Result[tutor.ExerciseSet], error)
	RequestVocabulary(ctx context.Context, text string, level tutor.Level) (*tutor.Result[tutor.VocabularyList], error)
	EvaluateAnswer(ctx context.Context, question, userAnswer, correctAnswer string) (*tutor.Result[string], error)
}

// LevelResolver supplies the level used when a request omits one.
type LevelResolver interface {
	Level(ctx context.Context) (tutor.Level, error)
}

// Deps are the collaborators of a Server.
type Deps struct {
	Tutor      Tutor
	Levels     LevelResolver
	Counters   store.CounterRepo
	Vocabulary store.VocabularyRepo
	Logger     *slog.Logger
}

// Server is the local bridge.
type Server struct {
	deps     Deps
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// New creates a Server with its routes registered.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		deps:     deps,
		logger:   logger,
		validate: validator.New(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/exercises", s.handleExercises)
		r.Post("/vocabulary", s.handleVocabulary)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/progress", s.handleProgress)
		r.Get("/stats", s.handleStats)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			s.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("bridge listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("bridge stopped")
	return nil
}
