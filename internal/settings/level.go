package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
)

// LevelSource resolves the learner level: stored value, then the configured
// default, then tutor.DefaultLevel.
type LevelSource struct {
	settings store.SettingsRepo
	fallback string
}

// NewLevelSource creates a LevelSource. fallback is the learner.level config
// value and may be empty.
func NewLevelSource(settings store.SettingsRepo, fallback string) *LevelSource {
	return &LevelSource{settings: settings, fallback: fallback}
}

// Level returns the effective level. A stored value that no longer parses is
// ignored.
func (s *LevelSource) Level(ctx context.Context) (tutor.Level, error) {
	if s.settings != nil {
		v, ok, err := s.settings.Get(ctx, store.KeyLevel)
		if err != nil {
			return "", fmt.Errorf("read level: %w", err)
		}
		if ok {
			if l, err := tutor.ParseLevel(v); err == nil {
				return l, nil
			}
		}
	}
	if strings.TrimSpace(s.fallback) != "" {
		if l, err := tutor.ParseLevel(s.fallback); err == nil {
			return l, nil
		}
	}
	return tutor.DefaultLevel, nil
}

// SetLevel parses name and stores it.
func (s *LevelSource) SetLevel(ctx context.Context, name string) (tutor.Level, error) {
	l, err := tutor.ParseLevel(name)
	if err != nil {
		return "", err
	}
	if err := s.settings.Set(ctx, store.KeyLevel, string(l)); err != nil {
		return "", fmt.Errorf("save level: %w", err)
	}
	return l, nil
}
