package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todomvc/internal/app"
)

// Header captures the text of a new item. Enter hands whatever is in the
// buffer to the owner, empty text included, and clears it.
type Header struct {
	input textinput.Model
}

func NewHeader() Header {
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500
	return Header{input: ti}
}

func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		text := h.input.Value()
		h.input.SetValue("")
		return h, emit(app.AddTodo{Content: text})
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// Value is the current buffer.
func (h Header) Value() string { return h.input.Value() }

func (h *Header) Focus() tea.Cmd { return h.input.Focus() }
func (h *Header) Blur()          { h.input.Blur() }
func (h Header) Focused() bool   { return h.input.Focused() }

func (h *Header) SetWidth(w int) { h.input.Width = w }

func (h Header) View() string {
	return titleStyle.Render("todos") + "\n" + h.input.View()
}
