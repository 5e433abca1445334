package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one table column. Width is in terminal cells.
type column struct {
	Title string
	Width int
	Right bool
}

// table writes rows with columns padded by display width, so kanji and kana
// line up with ASCII.
type table struct {
	w    io.Writer
	cols []column
}

func newTable(w io.Writer, cols ...column) *table {
	return &table{w: w, cols: cols}
}

func (t *table) width() int {
	n := 0
	for _, c := range t.cols {
		n += c.Width + 2
	}
	return max(n-2, 0)
}

func (t *table) header() {
	titles := make([]string, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.Title
	}
	t.row(titles...)
	t.rule()
}

func (t *table) rule() {
	fmt.Fprintln(t.w, strings.Repeat("─", t.width()))
}

func (t *table) row(cells ...string) {
	parts := make([]string, len(t.cols))
	for i, c := range t.cols {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(cell, c.Width, c.Right)
	}
	fmt.Fprintln(t.w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// pad truncates s to width cells and fills the rest with spaces.
func pad(s string, width int, right bool) string {
	s = runewidth.Truncate(s, width, "…")
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "")
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
