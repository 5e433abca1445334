// Package practice runs an exercise set as an interactive terminal quiz.
package practice

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/tutor"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// Score summarizes a finished or abandoned quiz.
type Score struct {
	Correct  int
	Answered int
	Total    int
	Finished bool
}

// Model is the Bubble Tea model for one exercise set.
type Model struct {
	exercises []tutor.Exercise
	index     int
	choice    components.MultiChoice
	score     Score
	done      bool
	width     int
	height    int
}

// New creates a quiz over every exercise in set. Info exercises render as a
// message card and are not scored.
func New(set tutor.ExerciseSet) Model {
	m := Model{exercises: set.Exercises}
	m.score.Total = len(set.Questions())
	m.load()
	return m
}

func (m *Model) load() {
	if m.index >= len(m.exercises) {
		m.done = true
		m.score.Finished = true
		return
	}
	ex := m.exercises[m.index]
	if !ex.IsInfo() {
		m.choice = components.NewMultiChoice(ex.Question, ex.Options, ex.CorrectAnswer)
	}
}

func (m Model) current() (tutor.Exercise, bool) {
	if m.done || m.index >= len(m.exercises) {
		return tutor.Exercise{}, false
	}
	return m.exercises[m.index], true
}

// Score returns the running score.
func (m Model) Score() Score {
	return m.score
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

		if m.done {
			if key.Matches(msg, keys.Finish) {
				return m, tea.Quit
			}
			return m, nil
		}

		ex, _ := m.current()
		if ex.IsInfo() || m.choice.Submitted {
			if key.Matches(msg, keys.Next) {
				m.index++
				m.load()
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			m.score.Answered++
			if m.choice.IsCorrect() {
				m.score.Correct++
			}
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.title(), fmt.Sprintf("%d/%d ✓", m.score.Correct, m.score.Total), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.body(), footer, m.width, m.height))
	return v
}

func (m Model) title() string {
	if m.done {
		return "Results"
	}
	return fmt.Sprintf("Exercise %d of %d", m.index+1, len(m.exercises))
}

func (m Model) hints() []layout.KeyHint {
	ex, _ := m.current()
	switch {
	case m.done:
		return hintsFor(keys.Finish)
	case ex.IsInfo() || m.choice.Submitted:
		return hintsFor(keys.Next, keys.Quit)
	}
	return hintsFor(keys.Up, keys.Down, keys.Jump, keys.Answer, keys.Quit)
}

// body renders the content area without the frame.
func (m Model) body() string {
	width := min(m.width-4, layout.ContentWidth)
	card := theme.Card.Width(width)

	if m.done {
		return card.Render(m.resultsView(width))
	}

	ex, _ := m.current()
	if ex.IsInfo() {
		var b strings.Builder
		if ex.Question != "" {
			b.WriteString(theme.Title.Render(ex.Question) + "\n\n")
		}
		b.WriteString(theme.Body.Render(ex.Message))
		return card.Render(b.String())
	}

	progress := components.NewProgressBar("", float64(m.index)/float64(len(m.exercises)), true, width-6)

	var b strings.Builder
	b.WriteString(progress.View() + "\n\n")
	b.WriteString(m.choice.View())
	if m.choice.Submitted {
		b.WriteString("\n")
		if m.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. Answer: " + ex.CorrectOption()))
		}
		if ex.Explanation != "" {
			b.WriteString("\n\n" + theme.Hint.Render(ex.Explanation))
		}
	}
	return card.Render(b.String())
}

func (m Model) resultsView(width int) string {
	var pct float64
	if m.score.Total > 0 {
		pct = float64(m.score.Correct) / float64(m.score.Total)
	}
	lines := []string{
		theme.Title.Render("Well done!"),
		"",
		theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", m.score.Correct, m.score.Total)),
		"",
		components.NewProgressBar("Score", pct, true, width-6).View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run shows set in the terminal and returns the score once the learner
// finishes or quits.
func Run(ctx context.Context, set tutor.ExerciseSet) (Score, error) {
	p := tea.NewProgram(New(set), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Score{}, fmt.Errorf("run practice: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Score{}, fmt.Errorf("run practice: unexpected model %T", final)
	}
	return m.Score(), nil
}
