// Package taskview derives the displayed task list from a task collection
// and computes the next collection after a pin or archive action.
//
// A Collection is a value: actions return a new Collection and never modify
// the receiver, so a caller can compare the old and new values to decide
// whether to re-render.
package taskview

import (
	"time"

	"taskbox/internal/task"
)

// Collection is the full ordered set of tasks owned by one view.
type Collection struct {
	tasks []task.Task
}

// New creates a collection from tasks in insertion order.
// The input slice is copied.
func New(tasks []task.Task) Collection {
	return Collection{tasks: cloneTasks(tasks)}
}

// Tasks returns a copy of the underlying tasks in insertion order,
// archived tasks included.
func (c Collection) Tasks() []task.Task {
	return cloneTasks(c.tasks)
}

// Len returns the number of tasks in the collection, archived tasks included.
func (c Collection) Len() int { return len(c.tasks) }

// Find returns the task with the given id.
func (c Collection) Find(id int) (task.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return task.Task{}, false
}

// Pin moves an INBOX task to PINNED.
// Pinned, archived and unknown tasks are left as they are.
func (c Collection) Pin(id int, at time.Time) Collection {
	i := c.indexOf(id)
	if i < 0 || c.tasks[i].State != task.StateInbox {
		return c
	}
	return c.with(i, task.StatePinned, at)
}

// Archive moves a task to ARCHIVED from any other state.
// Archiving an archived or unknown task returns c unchanged.
func (c Collection) Archive(id int, at time.Time) Collection {
	i := c.indexOf(id)
	if i < 0 || c.tasks[i].State == task.StateArchived {
		return c
	}
	return c.with(i, task.StateArchived, at)
}

// Equal reports whether both collections hold the same tasks in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c.tasks) != len(other.tasks) {
		return false
	}
	for i, t := range c.tasks {
		o := other.tasks[i]
		if t.ID != o.ID || t.Title != o.Title || t.State != o.State {
			return false
		}
		if (t.UpdatedAt == nil) != (o.UpdatedAt == nil) {
			return false
		}
		if t.UpdatedAt != nil && !t.UpdatedAt.Equal(*o.UpdatedAt) {
			return false
		}
	}
	return true
}

// Ordered returns the derived display sequence for the collection.
func (c Collection) Ordered() []task.Task {
	return Order(c.tasks)
}

// with returns a copy of c where the task at index i has the given state.
func (c Collection) with(i int, state task.State, at time.Time) Collection {
	next := cloneTasks(c.tasks)
	stamp := at
	next[i].State = state
	next[i].UpdatedAt = &stamp
	return Collection{tasks: next}
}

func (c Collection) indexOf(id int) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []task.Task) []task.Task {
	if tasks == nil {
		return nil
	}
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	return out
}
