// Package app owns the task list and applies intents to it one at a time.
// It has no knowledge of the terminal; the TUI and the CLI both drive it.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todomvc/internal/model"
	"github.com/Makepad-fr/todomvc/internal/persist"
	"github.com/Makepad-fr/todomvc/internal/store"
)

// Model is the root controller. It is not safe for concurrent use; intents
// are applied in the order Dispatch is called.
type Model struct {
	items  model.TaskList
	filter model.Filter

	kv     store.KV
	key    string
	logger *log.Logger

	lastSaveErr error
}

// New restores the list stored under key. Restoring never fails; see
// persist.Load.
func New(ctx context.Context, kv store.KV, key string, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		items:  persist.Load(ctx, kv, key, logger),
		filter: model.All,
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Dispatch applies one intent and reports whether the view must re-render.
// Every intent that changes the list is followed by a save before Dispatch
// returns.
func (m *Model) Dispatch(ctx context.Context, in Intent) bool {
	m.logger.Debug("dispatch", "intent", fmt.Sprintf("%T", in))

	switch in := in.(type) {
	case AddTodo:
		m.items = append(m.items, model.NewItem(in.Content))

	case Destroy:
		i := m.items.Index(in.ID)
		if i < 0 {
			return false
		}
		m.items = append(m.items[:i], m.items[i+1:]...)

	case ToggleCompleted:
		i := m.items.Index(in.ID)
		if i < 0 {
			return false
		}
		m.items[i].Completed = !m.items[i].Completed

	case UpdateContent:
		i := m.items.Index(in.ID)
		if i < 0 {
			return false
		}
		m.items[i].Content = in.Content

	case ToggleAllCompleted:
		target := !m.AllCompleted()
		for i := range m.items {
			m.items[i].Completed = target
		}

	case ClearCompleted:
		kept := m.items[:0]
		for _, it := range m.items {
			if !it.Completed {
				kept = append(kept, it)
			}
		}
		clear(m.items[len(kept):])
		m.items = kept

	case ChangeFilter:
		m.filter = in.Filter
		return true

	case Save:
		m.save(ctx)
		return false

	default:
		m.logger.Warn("unknown intent", "intent", fmt.Sprintf("%T", in))
		return false
	}

	m.save(ctx)
	return true
}

func (m *Model) save(ctx context.Context) {
	if err := persist.Save(ctx, m.kv, m.key, m.items); err != nil {
		m.logger.Error("save failed", "key", m.key, "err", err)
		m.lastSaveErr = err
		return
	}
	m.lastSaveErr = nil
}

// LastSaveErr is the error from the most recent save, or nil if it succeeded.
func (m *Model) LastSaveErr() error { return m.lastSaveErr }

// Items returns a copy of the full list.
func (m *Model) Items() model.TaskList { return m.items.Clone() }

// Len is the number of items regardless of filter.
func (m *Model) Len() int { return len(m.items) }

// ItemAt resolves a position in the unfiltered list.
func (m *Model) ItemAt(index int) (model.Item, bool) {
	if index < 0 || index >= len(m.items) {
		return model.Item{}, false
	}
	return m.items[index], true
}

// IDAt returns the ID at index, or "" when index is out of range. An empty ID
// makes every ID-addressed intent a no-op.
func (m *Model) IDAt(index int) string {
	it, _ := m.ItemAt(index)
	return it.ID
}

func (m *Model) Filter() model.Filter { return m.filter }

// ActiveCount is the number of incomplete items.
func (m *Model) ActiveCount() int {
	_, active := m.items.Stats()
	return active
}

func (m *Model) CompletedCount() int {
	done, _ := m.items.Stats()
	return done
}

// AllCompleted is true when no item is incomplete, including when the list is
// empty.
func (m *Model) AllCompleted() bool { return m.ActiveCount() == 0 }

// Shown returns the items visible under the active filter, each with its
// position in the unfiltered list.
func (m *Model) Shown() []model.Shown { return m.filter.Apply(m.items) }
