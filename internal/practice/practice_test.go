package practice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/tutor"
)

func testSet() tutor.ExerciseSet {
	return tutor.ExerciseSet{Exercises: []tutor.Exercise{
		{
			Type:          tutor.ExerciseMultipleChoice,
			Question:      "What does 天気 mean?",
			Options:       []string{"weather", "sky", "rain"},
			CorrectAnswer: 0,
			Explanation:   "天気 (てんき) means weather.",
		},
		{Type: tutor.ExerciseInfo, Question: "Note", Message: "今日 is read きょう."},
		{
			Type:          tutor.ExerciseMultipleChoice,
			Question:      "How is 今日 read?",
			Options:       []string{"こんにち", "きょう"},
			CorrectAnswer: 1,
		},
	}}
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestPractice_FullRun(t *testing.T) {
	m := New(testSet())
	if m.Score().Total != 2 {
		t.Fatalf("Total = %d, want 2 (info cards are not scored)", m.Score().Total)
	}

	// Answer the first question correctly, then move on.
	m, _ = send(t, m, special(tea.KeyEnter))
	if !m.choice.Submitted {
		t.Fatal("expected first question submitted")
	}
	m, _ = send(t, m, special(tea.KeyEnter))

	// Info card: Enter advances without scoring.
	if ex, _ := m.current(); !ex.IsInfo() {
		t.Fatalf("expected info card, got %q", ex.Question)
	}
	m, _ = send(t, m, special(tea.KeyEnter))

	// Pick the wrong option on the last question.
	m, _ = send(t, m, special(tea.KeyEnter), special(tea.KeyEnter))

	got := m.Score()
	want := Score{Correct: 1, Answered: 2, Total: 2, Finished: true}
	if got != want {
		t.Errorf("Score = %+v, want %+v", got, want)
	}

	_, cmd := send(t, m, special(tea.KeyEnter))
	if cmd == nil {
		t.Error("expected quit command on Enter at results")
	}
}

func TestPractice_DigitSelection(t *testing.T) {
	set := testSet()
	set.Exercises = set.Exercises[2:]
	m := New(set)

	m, _ = send(t, m, press('2'), special(tea.KeyEnter))
	if !m.choice.IsCorrect() {
		t.Errorf("expected option 2 to be correct")
	}
	if m.Score().Correct != 1 {
		t.Errorf("Correct = %d, want 1", m.Score().Correct)
	}
}

func TestPractice_ArrowNavigation(t *testing.T) {
	m := New(testSet())
	m, _ = send(t, m, special(tea.KeyDown), special(tea.KeyDown), special(tea.KeyDown))
	if m.choice.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (clamped)", m.choice.Selected)
	}
	m, _ = send(t, m, special(tea.KeyUp))
	if m.choice.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.choice.Selected)
	}
}

func TestPractice_QuitEarly(t *testing.T) {
	m := New(testSet())
	m, cmd := send(t, m, press('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.Score().Finished {
		t.Error("quitting early should not mark the quiz finished")
	}
}

func TestPractice_Body(t *testing.T) {
	m := New(testSet())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(m.body(), "天気") {
		t.Error("expected question in body")
	}

	m, _ = send(t, m, special(tea.KeyEnter))
	if !strings.Contains(m.body(), "means weather") {
		t.Error("expected explanation after submit")
	}

	m, _ = send(t, m, special(tea.KeyEnter))
	if !strings.Contains(m.body(), "きょう") {
		t.Error("expected info message")
	}
}

func TestPractice_Hints(t *testing.T) {
	m := New(testSet())
	if got := len(m.hints()); got != 5 {
		t.Errorf("hints = %d, want 5 while answering", got)
	}
	m, _ = send(t, m, special(tea.KeyEnter))
	if got := len(m.hints()); got != 2 {
		t.Errorf("hints = %d, want 2 after submit", got)
	}
}

func TestPractice_Placeholder(t *testing.T) {
	m := New(tutor.PlaceholderExercises(nil))
	if m.Score().Total != 0 {
		t.Errorf("Total = %d, want 0", m.Score().Total)
	}
	m, _ = send(t, m, special(tea.KeyEnter))
	if !m.Score().Finished {
		t.Error("expected finished after the only info card")
	}
}
