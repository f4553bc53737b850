// Package jsonfile loads a task collection from a JSON file.
//
// The file holds an array of tasks:
//
//	[{"id": 1, "title": "Buy milk", "state": "INBOX"}]
//
// The file is read on every Load and never written.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"taskbox/internal/source"
	"taskbox/internal/task"
)

var (
	// ErrPathRequired is returned when no file path is configured.
	ErrPathRequired = errors.New("task file path required")

	// ErrInvalidFile is returned when the file does not hold a valid task array.
	ErrInvalidFile = errors.New("invalid task file")
)

// Source reads tasks from a file.
type Source struct {
	path string
}

// New creates a file source.
func New(path string) (*Source, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	return &Source{path: path}, nil
}

// Name implements source.Source.
func (s *Source) Name() string { return source.KindFile + ":" + s.path }

// Load implements source.Source.
func (s *Source) Load(ctx context.Context) (source.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return source.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return source.Snapshot{}, fmt.Errorf("failed to read task file: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return source.Snapshot{}, fmt.Errorf("%w %s: %w", ErrInvalidFile, s.path, err)
	}

	if err := task.ValidateAll(tasks); err != nil {
		return source.Snapshot{}, fmt.Errorf("%w %s: %w", ErrInvalidFile, s.path, err)
	}

	return source.Snapshot{Tasks: tasks}, nil
}
