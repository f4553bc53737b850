// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskbox/internal/source"
	"taskbox/internal/task"
)

// FakeSource is an in-memory implementation of source.Source for testing.
type FakeSource struct {
	mu      sync.Mutex
	tasks   []task.Task
	loading bool
	loads   int

	// LoadErr is returned by Load when set.
	LoadErr error
}

// NewFakeSource creates a FakeSource holding tasks.
func NewFakeSource(tasks ...task.Task) *FakeSource {
	return &FakeSource{tasks: tasks}
}

// SetLoading sets the loading signal reported by Load.
func (f *FakeSource) SetLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = loading
}

// AddTask appends an inbox task.
func (f *FakeSource) AddTask(id int, title string) {
	f.AddTaskWithState(id, title, task.StateInbox)
}

// AddTaskWithState appends a task in the given state.
func (f *FakeSource) AddTaskWithState(id int, title string, state task.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task.Task{ID: id, Title: title, State: state})
}

// Loads returns how many times Load was called.
func (f *FakeSource) Loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// Name implements source.Source.
func (f *FakeSource) Name() string { return "fake" }

// Load implements source.Source.
func (f *FakeSource) Load(ctx context.Context) (source.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++

	if f.LoadErr != nil {
		return source.Snapshot{}, f.LoadErr
	}
	return source.Snapshot{
		Tasks:   append([]task.Task(nil), f.tasks...),
		Loading: f.loading,
	}, nil
}
