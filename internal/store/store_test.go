package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kotoba.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"settings", "counters", "llm_events", "vocabulary"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotoba.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Settings().Set(ctx, KeyLevel, "advanced"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	v, ok, err := s.Settings().Get(ctx, KeyLevel)
	if err != nil || !ok || v != "advanced" {
		t.Fatalf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestSettingsGetSetDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Settings()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, KeyAPIKey); err != nil || ok {
		t.Fatalf("Get missing = ok %v, err %v", ok, err)
	}

	if err := repo.Set(ctx, KeyAPIKey, "AIza-one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, KeyAPIKey, "AIza-two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := repo.Get(ctx, KeyAPIKey)
	if err != nil || !ok {
		t.Fatalf("get: ok %v, err %v", ok, err)
	}
	if v != "AIza-two" {
		t.Errorf("value = %q, want %q", v, "AIza-two")
	}

	if err := repo.Delete(ctx, KeyAPIKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, KeyAPIKey); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, KeyAPIKey); ok {
		t.Error("expected key to be gone")
	}
}

func TestCounterIncrement(t *testing.T) {
	s := openTestStore(t)
	repo := s.Counters()
	ctx := context.Background()

	var got []int64
	for i := 0; i < 5; i++ {
		v, err := repo.Increment(ctx, "test", 1)
		if err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
		got = append(got, v)
	}

	// Should be monotonically increasing starting from 1.
	for i, v := range got {
		if v != int64(i+1) {
			t.Errorf("value[%d] = %d, want %d", i, v, i+1)
		}
	}

	if v, _ := repo.Value(ctx, "missing"); v != 0 {
		t.Errorf("missing counter = %d, want 0", v)
	}
}

func TestCounterIncrementConcurrent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Counters()
	ctx := context.Background()

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := repo.RecordUsage(ctx, time.Now()); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("record usage: %v", err)
	}

	stats, err := repo.UsageStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != workers*perWorker {
		t.Errorf("count = %d, want %d", stats.Count, workers*perWorker)
	}
}

func TestRecordUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.Counters()
	ctx := context.Background()

	stats, err := repo.UsageStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 0 || stats.LastUsed != nil {
		t.Fatalf("fresh stats = %+v", stats)
	}

	first := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	if err := repo.RecordUsage(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordUsage(ctx, second); err != nil {
		t.Fatal(err)
	}

	stats, err = repo.UsageStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2", stats.Count)
	}
	if stats.LastUsed == nil || !stats.LastUsed.Equal(second) {
		t.Errorf("last used = %v, want %v", stats.LastUsed, second)
	}
}

func TestRecordProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.Counters()
	ctx := context.Background()

	if err := repo.RecordProgress(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordProgress(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordProgress(ctx, -1); err == nil {
		t.Fatal("expected error for negative words learned")
	}

	p, err := repo.Progress(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.WordsLearned != 3 || p.ExercisesDone != 2 {
		t.Errorf("progress = %+v, want 3 words and 2 exercises", p)
	}
}

func TestAddProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.Counters()
	ctx := context.Background()

	if err := repo.AddProgress(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := repo.AddProgress(ctx, 0, -1); err == nil {
		t.Fatal("expected error for negative exercises done")
	}

	p, err := repo.Progress(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.WordsLearned != 1 || p.ExercisesDone != 2 {
		t.Errorf("progress = %+v, want 1 word and 2 exercises", p)
	}
}

func TestLLMEventsAppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{RequestID: "a", Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "exercises", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\n日本語", ResponseBody: "{}"},
		{RequestID: "b", Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "vocabulary", InputTokens: 80, OutputTokens: 200, LatencyMs: 700, Success: true},
		{RequestID: "c", Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "exercises", LatencyMs: 100, Success: false, ErrorMessage: "API error (403): quota exceeded"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	// Newest first.
	if all[0].RequestID != "c" || all[2].RequestID != "a" {
		t.Errorf("order = %s,%s,%s", all[0].RequestID, all[1].RequestID, all[2].RequestID)
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("sequence not increasing: %d then %d", all[1].Sequence, all[0].Sequence)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "exercises", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].RequestID != "c" {
		t.Errorf("filtered = %+v", filtered)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.RequestBody != "[user]\n日本語" || !got.Success {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.0-flash", Purpose: "exercises", InputTokens: 100, OutputTokens: 300, LatencyMs: 1000, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "exercises", InputTokens: 50, OutputTokens: 100, LatencyMs: 500, Success: false},
		{Model: "gpt-4o-mini", Purpose: "feedback", InputTokens: 10, OutputTokens: 20, LatencyMs: 200, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	ex := byPurpose[0]
	if ex.Purpose != "exercises" || ex.Calls != 2 || ex.Failures != 1 ||
		ex.InputTokens != 150 || ex.OutputTokens != 400 || ex.AvgLatencyMs != 750 {
		t.Errorf("exercises stats = %+v", ex)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.0-flash" || byModel[0].Calls != 2 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestVocabularySaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.Vocabulary()
	ctx := context.Background()

	added, err := repo.SaveWords(ctx, []Word{
		{Kanji: "日本", Reading: "にほん", Meaning: "Japan", Level: "N5"},
		{Kanji: "勉強", Reading: "べんきょう", Meaning: "study", Level: "N4", PartOfSpeech: "noun"},
		{Kanji: " ", Reading: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	// Re-saving refreshes and bumps the seen count without duplicating.
	added, err = repo.SaveWords(ctx, []Word{
		{Kanji: "勉強", Reading: "べんきょう", Meaning: "study, learning", Level: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Errorf("re-save added = %d, want 0", added)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}

	words, err := repo.ListWords(ctx, "N4", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 {
		t.Fatalf("N4 words = %d, want 1", len(words))
	}
	w := words[0]
	if w.Meaning != "study, learning" || w.Level != "N4" || w.PartOfSpeech != "noun" || w.SeenCount != 2 {
		t.Errorf("word = %+v", w)
	}

	limited, err := repo.ListWords(ctx, "", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limited = %d, %v", len(limited), err)
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("file:test.db?mode=rwc")
	want := "file:test.db?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	if got != want {
		t.Errorf("withPragmas = %q\nwant %q", got, want)
	}
}
