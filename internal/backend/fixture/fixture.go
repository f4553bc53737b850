// Package fixture provides a built-in catalog of task collections used for
// demos and development.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskbox/internal/source"
	"taskbox/internal/task"
)

// ErrStoryNotFound is returned when no story matches the requested name.
var ErrStoryNotFound = errors.New("story not found")

// Story is a named snapshot.
type Story struct {
	Name     string
	Snapshot source.Snapshot
}

// Catalog returns all stories in display order.
func Catalog() []Story {
	return []Story{
		{Name: "Default", Snapshot: source.Snapshot{Tasks: defaultTasks()}},
		{Name: "WithPinnedTasks", Snapshot: source.Snapshot{Tasks: withPinnedTasks()}},
		{Name: "Archived", Snapshot: source.Snapshot{Tasks: archivedTasks()}},
		{Name: "Loading", Snapshot: source.Snapshot{Loading: true}},
		{Name: "Empty", Snapshot: source.Snapshot{}},
	}
}

// Lookup finds a story by name, ignoring case.
func Lookup(name string) (Story, error) {
	want := strings.TrimSpace(name)
	for _, s := range Catalog() {
		if strings.EqualFold(s.Name, want) {
			return s, nil
		}
	}
	return Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, name)
}

func defaultTasks() []task.Task {
	tasks := make([]task.Task, 0, 6)
	for i := 1; i <= 6; i++ {
		tasks = append(tasks, task.Task{
			ID:    i,
			Title: fmt.Sprintf("Task %d", i),
			State: task.StateInbox,
		})
	}
	return tasks
}

func withPinnedTasks() []task.Task {
	tasks := defaultTasks()[:5]
	return append(tasks, task.Task{ID: 6, Title: "Task 6 (pinned)", State: task.StatePinned})
}

func archivedTasks() []task.Task {
	tasks := defaultTasks()
	tasks[1].State = task.StateArchived
	tasks[3].State = task.StateArchived
	return tasks
}

// Source serves one story.
type Source struct {
	story Story
}

// New returns a source for the named story.
func New(name string) (*Source, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Source{story: s}, nil
}

// Name implements source.Source.
func (s *Source) Name() string { return source.KindFixture + ":" + s.story.Name }

// Load implements source.Source.
// Each call returns a fresh copy of the story's tasks.
func (s *Source) Load(ctx context.Context) (source.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return source.Snapshot{}, err
	}
	snap := s.story.Snapshot
	if snap.Tasks != nil {
		snap.Tasks = append([]task.Task(nil), snap.Tasks...)
	}
	return snap, nil
}
