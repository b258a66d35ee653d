package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todomvc/internal/app"
)

// intentMsg carries an intent from a component up to the root model.
type intentMsg struct{ intent app.Intent }

func emit(in app.Intent) tea.Cmd {
	return func() tea.Msg { return intentMsg{intent: in} }
}
