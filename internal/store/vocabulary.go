package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type vocabularyRepo struct {
	db *sql.DB
}

func (r *vocabularyRepo) SaveWords(ctx context.Context, words []Word) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	added := 0
	for _, w := range words {
		kanji := strings.TrimSpace(w.Kanji)
		reading := strings.TrimSpace(w.Reading)
		if kanji == "" && reading == "" {
			continue
		}

		var seen int
		err := tx.QueryRowContext(ctx,
			`INSERT INTO vocabulary (kanji, reading, meaning, level, part_of_speech, example, added_at, last_seen_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (kanji, reading) DO UPDATE SET
				meaning = excluded.meaning,
				level = CASE WHEN excluded.level = '' THEN level ELSE excluded.level END,
				part_of_speech = CASE WHEN excluded.part_of_speech = '' THEN part_of_speech ELSE excluded.part_of_speech END,
				example = CASE WHEN excluded.example = '' THEN example ELSE excluded.example END,
				seen_count = seen_count + 1,
				last_seen_at = excluded.last_seen_at
			 RETURNING seen_count`,
			kanji, reading, w.Meaning, w.Level, w.PartOfSpeech, w.Example, now, now,
		).Scan(&seen)
		if err != nil {
			return 0, fmt.Errorf("save word %q: %w", kanji, err)
		}
		if seen == 1 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

func (r *vocabularyRepo) ListWords(ctx context.Context, level string, limit int) ([]Word, error) {
	query := `SELECT id, kanji, reading, meaning, level, part_of_speech, example,
		seen_count, added_at, last_seen_at FROM vocabulary`
	var args []any
	if level != "" {
		query += " WHERE level = ?"
		args = append(args, level)
	}
	query += " ORDER BY last_seen_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var (
			w               Word
			added, lastSeen string
		)
		if err := rows.Scan(&w.ID, &w.Kanji, &w.Reading, &w.Meaning, &w.Level,
			&w.PartOfSpeech, &w.Example, &w.SeenCount, &added, &lastSeen); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		if w.AddedAt, err = parseTime(added); err != nil {
			return nil, err
		}
		if w.LastSeenAt, err = parseTime(lastSeen); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *vocabularyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}
