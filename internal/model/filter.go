package model

import (
	"fmt"
	"strings"
)

// Filter selects which items are shown.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

// Filters lists every variant in display order.
var Filters = []Filter{All, Active, Completed}

func (f Filter) String() string {
	switch f {
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}

// ParseFilter accepts the variant names case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return All, fmt.Errorf("unknown filter %q: must be one of all, active, completed", s)
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Active
	case Active:
		return Completed
	default:
		return All
	}
}

// Match reports whether it is visible under f.
func (f Filter) Match(it Item) bool {
	switch f {
	case Active:
		return !it.Completed
	case Completed:
		return it.Completed
	default:
		return true
	}
}

// Shown pairs a visible item with its position in the unfiltered list.
type Shown struct {
	Index int
	Item  Item
}

// Apply returns the items visible under f, in list order.
func (f Filter) Apply(l TaskList) []Shown {
	out := make([]Shown, 0, len(l))
	for i, it := range l {
		if f.Match(it) {
			out = append(out, Shown{Index: i, Item: it})
		}
	}
	return out
}
