package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todomvc/internal/app"
	"github.com/Makepad-fr/todomvc/internal/model"
)

// doubleClickWindow is the longest gap between two clicks that still counts
// as a double click.
const doubleClickWindow = 400 * time.Millisecond

// checkboxWidth is the number of cells, from the start of a row's content,
// that belong to the checkbox.
const checkboxWidth = 2

// ItemView renders and edits a single item. It owns only its editing state;
// every change to the item itself goes up as an intent.
type ItemView struct {
	item  model.Item
	index int // position in the unfiltered list

	editing   bool
	edit      textinput.Model
	lastClick time.Time
}

func NewItemView(s model.Shown) ItemView {
	ti := textinput.New()
	ti.Prompt = editPrompt
	ti.CharLimit = 500
	return ItemView{item: s.Item, index: s.Index, edit: ti}
}

// SetProps replaces the item data passed down from the owner, keeping local
// editing state.
func (v *ItemView) SetProps(s model.Shown) {
	v.item = s.Item
	v.index = s.Index
}

func (v ItemView) ID() string       { return v.item.ID }
func (v ItemView) Index() int       { return v.index }
func (v ItemView) Item() model.Item { return v.item }
func (v ItemView) Editing() bool    { return v.editing }

// EditValue is the current text of the edit field.
func (v ItemView) EditValue() string { return v.edit.Value() }

func (v *ItemView) SetWidth(w int) { v.edit.Width = w }

// StartEdit switches to editing and focuses the edit field, prefilled with
// the content.
func (v *ItemView) StartEdit() tea.Cmd {
	v.editing = true
	v.edit.SetValue(v.item.Content)
	v.edit.CursorEnd()
	return v.edit.Focus()
}

// commit ends editing and sends the edit field's text upward. Enter, Esc and
// blur all land here; there is no cancel path.
func (v *ItemView) commit() tea.Cmd {
	if !v.editing {
		return nil
	}
	v.editing = false
	v.edit.Blur()
	return emit(app.UpdateContent{ID: v.item.ID, Content: v.edit.Value()})
}

// Blur is called when focus leaves the row. An open edit is committed.
func (v *ItemView) Blur() tea.Cmd { return v.commit() }

func (v ItemView) Update(msg tea.Msg) (ItemView, tea.Cmd) {
	if v.editing {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.Type {
			case tea.KeyEnter, tea.KeyEsc:
				cmd := v.commit()
				return v, cmd
			}
		}
		var cmd tea.Cmd
		v.edit, cmd = v.edit.Update(msg)
		return v, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch {
	case key.Matches(k, keys.Toggle):
		return v, emit(app.ToggleCompleted{ID: v.item.ID})
	case key.Matches(k, keys.Edit):
		cmd := v.StartEdit()
		return v, cmd
	case key.Matches(k, keys.Destroy):
		return v, emit(app.Destroy{ID: v.item.ID})
	}
	return v, nil
}

// Click handles a left click at column x of the row's content. The checkbox
// toggles; a second click on the label within doubleClickWindow starts
// editing.
func (v ItemView) Click(x int, at time.Time) (ItemView, tea.Cmd) {
	if v.editing {
		return v, nil
	}
	if x >= 0 && x < checkboxWidth {
		v.lastClick = time.Time{}
		return v, emit(app.ToggleCompleted{ID: v.item.ID})
	}
	if !v.lastClick.IsZero() && at.Sub(v.lastClick) <= doubleClickWindow {
		v.lastClick = time.Time{}
		cmd := v.StartEdit()
		return v, cmd
	}
	v.lastClick = at
	return v, nil
}

// View renders the row. selected marks the cursor row.
func (v ItemView) View(selected bool) string {
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("›") + " "
	}
	if v.editing {
		return prefix + v.edit.View()
	}
	return prefix + Row(v.item.Content, v.item.Completed)
}
