package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Focus       key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Destroy     key.Binding
	ToggleAll   key.Binding
	FilterAll   key.Binding
	FilterAct   key.Binding
	FilterDone  key.Binding
	CycleFilter key.Binding
	Clear       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Focus:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "new/list")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Destroy:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	ToggleAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
	FilterAll:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
	FilterAct:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
	FilterDone:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
	CycleFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
	Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Destroy, k.Focus, k.CycleFilter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Toggle, k.Edit, k.Destroy, k.ToggleAll},
		{k.FilterAll, k.FilterAct, k.FilterDone, k.CycleFilter, k.Clear},
		{k.Help, k.Quit},
	}
}
