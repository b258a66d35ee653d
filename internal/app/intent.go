package app

import "github.com/Makepad-fr/todomvc/internal/model"

// Intent is a request for a state change, emitted by a view or a CLI command.
type Intent interface{ intent() }

type (
	AddTodo struct{ Content string }

	Destroy struct{ ID string }

	ToggleCompleted struct{ ID string }

	UpdateContent struct {
		ID      string
		Content string
	}

	ToggleAllCompleted struct{}

	ClearCompleted struct{}

	ChangeFilter struct{ Filter model.Filter }

	// Save writes the list to storage without changing it.
	Save struct{}
)

func (AddTodo) intent()            {}
func (Destroy) intent()            {}
func (ToggleCompleted) intent()    {}
func (UpdateContent) intent()      {}
func (ToggleAllCompleted) intent() {}
func (ClearCompleted) intent()     {}
func (ChangeFilter) intent()       {}
func (Save) intent()               {}
