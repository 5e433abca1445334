package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
)

// Level is the learner proficiency interpolated into prompts.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelIntermediate

// Levels lists the accepted levels in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel accepts a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown level %q (want beginner, intermediate or advanced)", llm.ErrInvalidInput, s)
}

func (l Level) String() string { return string(l) }

// ExerciseType distinguishes real questions from informational cards.
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	ExerciseInfo           ExerciseType = "info"
)

// Exercise is one generated question, or an info card when Type is info.
type Exercise struct {
	Type          ExerciseType `json:"type"`
	Question      string       `json:"question,omitempty"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer int          `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
	Message       string       `json:"message,omitempty"`
}

// IsInfo reports whether the exercise is an informational card.
func (e Exercise) IsInfo() bool { return e.Type == ExerciseInfo }

// IsCorrect reports whether choice is the index of the correct option.
func (e Exercise) IsCorrect(choice int) bool {
	return e.Type == ExerciseMultipleChoice && choice == e.CorrectAnswer
}

// CorrectOption returns the text of the correct option.
func (e Exercise) CorrectOption() string {
	if e.CorrectAnswer < 0 || e.CorrectAnswer >= len(e.Options) {
		return ""
	}
	return e.Options[e.CorrectAnswer]
}

// KeyWord is a vocabulary entry attached to an exercise set.
type KeyWord struct {
	Word    string `json:"word"`
	Reading string `json:"reading,omitempty"`
	Meaning string `json:"meaning,omitempty"`
	Level   string `json:"level,omitempty"`
}

// GrammarPoint is a grammar pattern found in the text.
type GrammarPoint struct {
	Pattern     string `json:"pattern"`
	Explanation string `json:"explanation,omitempty"`
}

// ExerciseSet is the decoded reply of RequestExercises.
type ExerciseSet struct {
	Exercises  []Exercise     `json:"exercises"`
	Vocabulary []KeyWord      `json:"vocabulary,omitempty"`
	Grammar    []GrammarPoint `json:"grammar,omitempty"`
}

// Questions returns the multiple-choice exercises in order.
func (s ExerciseSet) Questions() []Exercise {
	var out []Exercise
	for _, e := range s.Exercises {
		if e.Type == ExerciseMultipleChoice {
			out = append(out, e)
		}
	}
	return out
}

// Word is one vocabulary entry.
type Word struct {
	Kanji        string `json:"kanji"`
	Reading      string `json:"reading"`
	Meaning      string `json:"meaning"`
	Level        string `json:"level"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Example      string `json:"example,omitempty"`
}

// VocabularyList is the decoded reply of RequestVocabulary. Message is set
// only on the degraded substitute built by EmptyVocabulary.
type VocabularyList struct {
	Words   []Word `json:"words"`
	Message string `json:"message,omitempty"`
}

// ReviewWords converts the list into review-list rows for the store.
func (l VocabularyList) ReviewWords() []store.Word {
	out := make([]store.Word, 0, len(l.Words))
	for _, w := range l.Words {
		out = append(out, store.Word{
			Kanji:        w.Kanji,
			Reading:      w.Reading,
			Meaning:      w.Meaning,
			Level:        w.Level,
			PartOfSpeech: w.PartOfSpeech,
			Example:      w.Example,
		})
	}
	return out
}

// Result pairs a decoded value with the raw model text and accounting data.
type Result[T any] struct {
	RawText string
	Value   T
	Usage   llm.Usage
	Model   string
}
