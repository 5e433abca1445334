package tutor

import (
	"strings"
	"testing"
)

func TestBuildExercisesPrompt(t *testing.T) {
	p, err := buildExercisesPrompt("猫が好き {{.Level}} です", LevelAdvanced)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"advanced learner",
		"Text: 猫が好き {{.Level}} です",
		`"correctAnswer": 0`,
		"Reply ONLY with the JSON",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildVocabularyPrompt(t *testing.T) {
	p, err := buildVocabularyPrompt("東京へ行きます", LevelBeginner)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, "beginner learner") || !strings.Contains(p, "Text: 東京へ行きます") {
		t.Errorf("unexpected prompt:\n%s", p)
	}
	if !strings.Contains(p, `"partOfSpeech"`) {
		t.Errorf("prompt lacks the word shape:\n%s", p)
	}
}

func TestBuildFeedbackPrompt(t *testing.T) {
	p, err := buildFeedbackPrompt("What is 水?", "fire", "water")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Question: What is 水?", "Learner's answer: fire", "Correct answer: water"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}
