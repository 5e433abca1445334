package practice

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/kotoba/internal/ui/layout"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Jump   key.Binding
	Answer key.Binding
	Next   key.Binding
	Finish key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "Jump")),
	Answer: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Answer")),
	Next:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Next")),
	Finish: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Finish")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "Quit")),
}

// hintsFor converts bindings into footer hints.
func hintsFor(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
