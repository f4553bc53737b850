// Package task defines the task entity and its lifecycle states.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// State is the lifecycle state of a task.
// The zero value is StateInbox, the state of any newly created task.
type State int

const (
	// StateInbox is the default state for tasks entering a collection.
	StateInbox State = iota

	// StatePinned marks a task the user promoted to the top of the list.
	StatePinned

	// StateArchived marks a task the user dismissed. Archived tasks stay in
	// the collection but are hidden from the displayed list.
	StateArchived
)

// legacyPrefix is accepted on state names from older data sources.
const legacyPrefix = "TASK_"

var (
	// ErrUnknownState is returned when a state name is not recognised.
	ErrUnknownState = errors.New("unknown task state")

	// ErrMissingID is returned for tasks without a positive id.
	ErrMissingID = errors.New("task id required")

	// ErrMissingTitle is returned for tasks with a blank title.
	ErrMissingTitle = errors.New("task title required")

	// ErrDuplicateID is returned when two tasks in a collection share an id.
	ErrDuplicateID = errors.New("duplicate task id")
)

// String returns the canonical name of the state.
func (s State) String() string {
	switch s {
	case StateInbox:
		return "INBOX"
	case StatePinned:
		return "PINNED"
	case StateArchived:
		return "ARCHIVED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	switch s {
	case StateInbox, StatePinned, StateArchived:
		return true
	default:
		return false
	}
}

// ParseState parses a state name.
// Names are matched case-insensitively, with or without the "TASK_" prefix.
// An empty name parses as StateInbox.
func ParseState(name string) (State, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(n, legacyPrefix); ok {
		if rest == "" {
			return StateInbox, fmt.Errorf("%w: %q", ErrUnknownState, name)
		}
		n = rest
	}

	switch n {
	case "", "INBOX":
		return StateInbox, nil
	case "PINNED":
		return StatePinned, nil
	case "ARCHIVED":
		return StateArchived, nil
	default:
		return StateInbox, fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task is a single unit of work.
type Task struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	State     State      `json:"state"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Pinned reports whether the task is pinned.
func (t Task) Pinned() bool { return t.State == StatePinned }

// Archived reports whether the task is archived.
func (t Task) Archived() bool { return t.State == StateArchived }

// Validate checks that the task has the shape a data source must deliver.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("task %d: %w", t.ID, ErrMissingID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task %d: %w", t.ID, ErrMissingTitle)
	}
	if !t.State.Valid() {
		return fmt.Errorf("task %d: %w: %d", t.ID, ErrUnknownState, int(t.State))
	}
	return nil
}

// ValidateAll validates every task and rejects duplicate ids.
func ValidateAll(tasks []Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task %d: %w", t.ID, ErrDuplicateID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
