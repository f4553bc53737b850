package taskview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskbox/internal/task"
)

// Phase tells the rendering layer what to show.
type Phase int

const (
	// PhaseLoading means data is not yet available. Rows must be ignored.
	PhaseLoading Phase = iota

	// PhaseEmpty means loading finished and nothing is left to display.
	PhaseEmpty

	// PhaseReady means Rows holds at least one task.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// View is what the rendering layer consumes on every state change.
type View struct {
	Phase Phase
	Rows  []task.Task
}

// Present gates the derived sequence behind the loading signal.
// While loading, no rows are returned even if the collection has tasks.
func Present(loading bool, c Collection) View {
	if loading {
		return View{Phase: PhaseLoading}
	}
	rows := c.Ordered()
	if len(rows) == 0 {
		return View{Phase: PhaseEmpty}
	}
	return View{Phase: PhaseReady, Rows: rows}
}

// Action is a user action on a single task.
type Action int

const (
	// ActionPin pins an inbox task.
	ActionPin Action = iota + 1

	// ActionArchive archives a task in any state.
	ActionArchive
)

// ErrUnknownAction is returned by ParseAction for unrecognised names.
var ErrUnknownAction = errors.New("unknown action")

func (a Action) String() string {
	switch a {
	case ActionPin:
		return "pin"
	case ActionArchive:
		return "archive"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses "pin" or "archive", ignoring case.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pin":
		return ActionPin, nil
	case "archive":
		return ActionArchive, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
}

// Apply runs action against the task with the given id.
func (c Collection) Apply(action Action, id int, at time.Time) (Collection, error) {
	switch action {
	case ActionPin:
		return c.Pin(id, at), nil
	case ActionArchive:
		return c.Archive(id, at), nil
	default:
		return c, fmt.Errorf("%w: %v", ErrUnknownAction, action)
	}
}
