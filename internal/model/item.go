package model

import "github.com/google/uuid"

// Item is the domain model for a todo entry.
// ID is session-scoped and never written to storage.
type Item struct {
	ID        string `json:"-" yaml:"-"`
	Content   string `json:"content" yaml:"content"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NewItem returns an incomplete item with a fresh ID.
func NewItem(content string) Item {
	return Item{ID: NewID(), Content: content}
}

// NewID returns an opaque identifier for an item.
func NewID() string { return uuid.NewString() }

// TaskList is the ordered list of items; order of addition is display order.
type TaskList []Item

// Index returns the position of the item with the given ID, or -1.
func (l TaskList) Index(id string) int {
	for i, it := range l {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts completed and active items.
func (l TaskList) Stats() (completed, active int) {
	for _, it := range l {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}
	return
}

// Clone returns a copy that shares no backing array with l.
func (l TaskList) Clone() TaskList {
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}
