package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todomvc/internal/model"
	"github.com/Makepad-fr/todomvc/internal/tui"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func ok(w io.Writer, msg string)   { fmt.Fprintln(w, successStyle.Render("✔ "+msg)) }
func fail(w io.Writer, msg string) { fmt.Fprintln(w, errorStyle.Render("✖ "+msg)) }

// -------------- rendering helpers --------------

func flatLines(shown []model.Shown) []string {
	if len(shown) == 0 {
		return []string{mutedStyle.Render("no items")}
	}
	out := make([]string, 0, len(shown))
	for _, s := range shown {
		content := s.Item.Content
		if r := []rune(content); len(r) > 80 {
			content = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s",
			mutedStyle.Render(fmt.Sprintf("%2d.", s.Index+1)), tui.Row(content, s.Item.Completed)))
	}
	return out
}

func groupLines(shown []model.Shown) []string {
	var pend, done []model.Shown
	for _, s := range shown {
		if s.Item.Completed {
			done = append(done, s)
		} else {
			pend = append(pend, s)
		}
	}
	section := func(title string, ss []model.Shown) []string {
		lines := []string{accentStyle.Render(title)}
		if len(ss) == 0 {
			return append(lines, mutedStyle.Render("(none)"))
		}
		return append(lines, flatLines(ss)...)
	}
	lines := section("Active", pend)
	lines = append(lines, "")
	return append(lines, section("Completed", done)...)
}
