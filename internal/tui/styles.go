package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("204"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	boxChecked   = "☑"
	boxUnchecked = "☐"
	editPrompt   = "✎ "
)

// DisableColor renders everything without ANSI styling.
func DisableColor() { lipgloss.SetColorProfile(termenv.Ascii) }

// Panel frames lines in the rounded border used across the app.
func Panel(lines []string) string {
	return frameStyle.Render(strings.Join(lines, "\n"))
}

// ProgressBar renders "[███░░] done/total".
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		width = 28
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Checkbox returns the styled box glyph for an item.
func Checkbox(completed bool) string {
	if completed {
		return successStyle.Render(boxChecked)
	}
	return mutedStyle.Render(boxUnchecked)
}

// Stats renders the "Todos ✔ n • n Total n" line shared by the CLI and TUI.
func Stats(done, active int) string {
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), active,
		accentStyle.Render("Total"), done+active,
	)
}

// Row renders one list line: checkbox and content, struck through when done.
func Row(content string, completed bool) string {
	text := content
	if completed {
		text = doneStyle.Render(content)
	}
	return Checkbox(completed) + " " + text
}
