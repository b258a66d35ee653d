// Package tui is the interactive terminal view: a header for new items, the
// item list, and a footer with counts and filters, composed by Model.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todomvc/internal/app"
)

type focusArea int

const (
	focusHeader focusArea = iota
	focusList
)

// Screen geometry used to map mouse events onto rows. Offsets are relative to
// the frame's top-left corner.
const (
	frameTop     = 1 // border
	frameLeft    = 2 // border + padding
	rowPrefix    = 2 // cursor marker
	inputRow     = 1
	toggleAllRow = 2
	firstItemRow = 3
	chromeRows   = 8 // frame, header, toggle-all, spacer, footer, help
)

// Model is the root Bubble Tea model. It forwards every intent to the app
// controller and rebuilds its rows from the derived data afterwards.
type Model struct {
	ctx context.Context
	app *app.Model

	header Header
	rows   []ItemView
	cursor int
	offset int
	focus  focusArea
	help   help.Model

	width, height int
	now           func() time.Time
}

func New(ctx context.Context, a *app.Model) Model {
	m := Model{
		ctx:    ctx,
		app:    a,
		header: NewHeader(),
		focus:  focusHeader,
		help:   help.New(),
		now:    time.Now,
	}
	m.header.Focus()
	m.sync()
	return m
}

// Run starts the program and blocks until the user quits. Every intent is
// saved as it is applied, so there is nothing to write back on exit.
func Run(ctx context.Context, a *app.Model, logger *log.Logger) error {
	logger.Info("tui started", "items", a.Len())
	p := tea.NewProgram(New(ctx, a),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("tui stopped", "items", a.Len())
	return nil
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.header.SetWidth(m.inputWidth())
		for i := range m.rows {
			m.rows[i].SetWidth(m.inputWidth())
		}
		m.scroll()
		return m, nil

	case intentMsg:
		if m.app.Dispatch(m.ctx, msg.intent) {
			m.sync()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if row := m.selectedRow(); row != nil && row.Editing() {
				return m, tea.Sequence(row.Blur(), tea.Quit)
			}
			return m, tea.Quit
		}
		if m.focus == focusHeader {
			return m.updateHeader(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	// Anything else (cursor blink and friends) goes to the focused input.
	var cmd tea.Cmd
	if m.focus == focusHeader {
		m.header, cmd = m.header.Update(msg)
	} else if row := m.selectedRow(); row != nil && row.Editing() {
		*row, cmd = row.Update(msg)
	}
	return m, cmd
}

func (m Model) updateHeader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Focus) {
		m.header.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.header, cmd = m.header.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.selectedRow()
	var cmd tea.Cmd

	if row != nil && row.Editing() {
		switch {
		case key.Matches(msg, keys.Focus):
			cmd = tea.Batch(row.Blur(), m.focusHeader())
			return m, cmd
		case msg.Type == tea.KeyUp:
			cmd = row.Blur()
			m.moveCursor(-1)
			return m, cmd
		case msg.Type == tea.KeyDown:
			cmd = row.Blur()
			m.moveCursor(1)
			return m, cmd
		}
		*row, cmd = row.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Focus):
		cmd = m.focusHeader()
		return m, cmd
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, keys.ToggleAll):
		return m, emit(app.ToggleAllCompleted{})
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if cmd, ok := m.footer().Update(msg); ok {
		return m, cmd
	}
	if row != nil {
		*row, cmd = row.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	y := msg.Y - frameTop
	x := msg.X - frameLeft - rowPrefix

	switch {
	case y == inputRow:
		var cmd tea.Cmd
		if row := m.selectedRow(); row != nil {
			cmd = row.Blur()
		}
		cmd = tea.Batch(cmd, m.focusHeader())
		return m, cmd

	case y == toggleAllRow && x >= 0 && x < checkboxWidth:
		// An open edit lands before the bulk toggle can filter its row away.
		if row := m.selectedRow(); row != nil && row.Editing() {
			return m, tea.Sequence(row.Blur(), emit(app.ToggleAllCompleted{}))
		}
		return m, emit(app.ToggleAllCompleted{})

	case y >= firstItemRow:
		i := m.offset + y - firstItemRow
		if i >= len(m.rows) || i >= m.offset+m.visibleRows() {
			return m, nil
		}
		var cmds []tea.Cmd
		if m.focus == focusHeader {
			m.header.Blur()
			m.focus = focusList
		}
		if i != m.cursor {
			if row := m.selectedRow(); row != nil {
				cmds = append(cmds, row.Blur())
			}
			m.cursor = i
		}
		var cmd tea.Cmd
		m.rows[i], cmd = m.rows[i].Click(x, m.now())
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *Model) focusHeader() tea.Cmd {
	m.focus = focusHeader
	return m.header.Focus()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.scroll()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) scroll() {
	vis := m.visibleRows()
	if vis < 1 {
		vis = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vis {
		m.offset = m.cursor - vis + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	n := m.height - chromeRows
	if m.app.LastSaveErr() != nil {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (m Model) inputWidth() int {
	w := m.width - frameLeft*2 - rowPrefix - len(editPrompt)
	if w < 10 {
		w = 0
	}
	return w
}

func (m *Model) selectedRow() *ItemView {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// sync rebuilds the rows from the controller's shown items. Rows keep their
// editing state across rebuilds by ID, and the cursor follows the selected
// item when it is still shown.
func (m *Model) sync() {
	selected := ""
	if row := m.selectedRow(); row != nil {
		selected = row.ID()
	}
	old := make(map[string]ItemView, len(m.rows))
	for _, r := range m.rows {
		old[r.ID()] = r
	}

	shown := m.app.Shown()
	rows := make([]ItemView, 0, len(shown))
	for i, s := range shown {
		r, ok := old[s.Item.ID]
		if ok {
			r.SetProps(s)
		} else {
			r = NewItemView(s)
			r.SetWidth(m.inputWidth())
		}
		if s.Item.ID == selected {
			m.cursor = i
		}
		rows = append(rows, r)
	}
	m.rows = rows
	m.clampCursor()
	m.scroll()
}

func (m Model) footer() Footer {
	return Footer{
		ActiveCount: m.app.ActiveCount(),
		Filter:      m.app.Filter(),
		SaveErr:     m.app.LastSaveErr(),
	}
}

func (m Model) View() string {
	lines := []string{
		m.header.View(),
		toggleAllLine(m.app.AllCompleted()),
	}

	if len(m.rows) == 0 {
		lines = append(lines, "  "+mutedStyle.Render("nothing to show"))
	}
	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.rows[i].View(m.focus == focusList && i == m.cursor))
	}

	lines = append(lines, "", m.footer().View(), m.help.View(keys))
	return Panel(lines)
}

func toggleAllLine(allCompleted bool) string {
	return "  " + Checkbox(allCompleted) + " " + mutedStyle.Render("Mark all as complete")
}
