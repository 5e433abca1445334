package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// counterRepo manages named counters in the counters table. It also assigns
// the global event sequence, so events keep a strict append order even when
// their row IDs are reused after a reset.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type counterRepo struct {
	mu sync.Mutex
	db *sql.DB
}

func (r *counterRepo) Increment(ctx context.Context, name string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return increment(ctx, r.db, name, delta)
}

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func increment(ctx context.Context, q execQuerier, name string, delta int64) (int64, error) {
	var v int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET value = value + excluded.value
		 RETURNING value`,
		name, delta,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("increment %q: %w", name, err)
	}
	return v, nil
}

// next returns the next event sequence number.
func (r *counterRepo) next(ctx context.Context) (int64, error) {
	return r.Increment(ctx, counterEventSequence, 1)
}

func (r *counterRepo) Value(ctx context.Context, name string) (int64, error) {
	var v int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %q: %w", name, err)
	}
	return v, nil
}

func (r *counterRepo) RecordUsage(ctx context.Context, at time.Time) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := increment(ctx, tx, CounterAPIUsage, 1); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			KeyLastUsed, at.UTC().Format(time.RFC3339), formatTime(time.Now()),
		)
		if err != nil {
			return fmt.Errorf("store last used: %w", err)
		}
		return nil
	})
}

func (r *counterRepo) UsageStats(ctx context.Context) (UsageStats, error) {
	count, err := r.Value(ctx, CounterAPIUsage)
	if err != nil {
		return UsageStats{}, err
	}
	stats := UsageStats{Count: count}

	var raw string
	err = r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, KeyLastUsed).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return stats, nil
	case err != nil:
		return UsageStats{}, fmt.Errorf("read last used: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return UsageStats{}, fmt.Errorf("parse last used %q: %w", raw, err)
	}
	stats.LastUsed = &t
	return stats, nil
}

func (r *counterRepo) RecordProgress(ctx context.Context, wordsLearned int) error {
	return r.AddProgress(ctx, wordsLearned, 1)
}

func (r *counterRepo) AddProgress(ctx context.Context, wordsLearned, exercisesDone int) error {
	if wordsLearned < 0 {
		return fmt.Errorf("words learned must not be negative, got %d", wordsLearned)
	}
	if exercisesDone < 0 {
		return fmt.Errorf("exercises done must not be negative, got %d", exercisesDone)
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := increment(ctx, tx, CounterWordsLearned, int64(wordsLearned)); err != nil {
			return err
		}
		_, err := increment(ctx, tx, CounterExercisesDone, int64(exercisesDone))
		return err
	})
}

func (r *counterRepo) Progress(ctx context.Context) (Progress, error) {
	words, err := r.Value(ctx, CounterWordsLearned)
	if err != nil {
		return Progress{}, err
	}
	done, err := r.Value(ctx, CounterExercisesDone)
	if err != nil {
		return Progress{}, err
	}
	return Progress{WordsLearned: words, ExercisesDone: done}, nil
}

// inTx runs fn in a transaction while holding the counter lock.
func (r *counterRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
