// Package source defines the backend-agnostic contract for loading tasks.
package source

import (
	"context"

	"taskbox/internal/task"
)

// Snapshot is what a data source delivers to the view.
type Snapshot struct {
	// Tasks is the collection in insertion order.
	Tasks []task.Task

	// Loading reports that data is not yet available.
	// Tasks must not be displayed while it is set.
	Loading bool
}

// Source supplies the initial task collection.
// Commands never import a backend package directly.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Load returns the current snapshot.
	// Implementations must return tasks that pass task.ValidateAll.
	Load(ctx context.Context) (Snapshot, error)
}

// Kinds of source selectable in configuration.
const (
	KindFixture = "fixture"
	KindFile    = "file"
	KindGoogle  = "google"
)
