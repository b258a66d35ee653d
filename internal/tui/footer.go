package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todomvc/internal/app"
	"github.com/Makepad-fr/todomvc/internal/model"
)

// Footer is stateless: everything it shows is passed down by the owner.
type Footer struct {
	ActiveCount int
	Filter      model.Filter
	SaveErr     error
}

// Update maps filter and clear keys to intents. It reports false for keys it
// does not own.
func (f Footer) Update(msg tea.Msg) (tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case key.Matches(k, keys.FilterAll):
		return emit(app.ChangeFilter{Filter: model.All}), true
	case key.Matches(k, keys.FilterAct):
		return emit(app.ChangeFilter{Filter: model.Active}), true
	case key.Matches(k, keys.FilterDone):
		return emit(app.ChangeFilter{Filter: model.Completed}), true
	case key.Matches(k, keys.CycleFilter):
		return emit(app.ChangeFilter{Filter: f.Filter.Next()}), true
	case key.Matches(k, keys.Clear):
		return emit(app.ClearCompleted{}), true
	}
	return nil, false
}

// ItemsLeft is the counter text. The wording does not change for one item.
func ItemsLeft(n int) string { return fmt.Sprintf("%d items left", n) }

// View labels every action with the key that triggers it; the footer is
// keyboard-driven and has no click targets.
func (f Footer) View() string {
	links := make([]string, 0, len(model.Filters))
	for _, fl := range model.Filters {
		label := " " + fl.String() + " "
		if fl == f.Filter {
			label = selectedStyle.Render("[" + fl.String() + "]")
		}
		links = append(links, keyHint(filterKey(fl))+label)
	}
	line := fmt.Sprintf("%s   %s   %s",
		pendingStyle.Render(ItemsLeft(f.ActiveCount)),
		strings.Join(links, " "),
		keyHint(keys.Clear)+mutedStyle.Render("Clear completed"),
	)
	if f.SaveErr != nil {
		line += "\n" + errorStyle.Render("✖ not saved: "+f.SaveErr.Error())
	}
	return line
}

func filterKey(fl model.Filter) key.Binding {
	switch fl {
	case model.Active:
		return keys.FilterAct
	case model.Completed:
		return keys.FilterDone
	}
	return keys.FilterAll
}

func keyHint(b key.Binding) string {
	return helpStyle.Render(b.Help().Key + " ")
}
