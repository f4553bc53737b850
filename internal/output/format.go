// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskbox/internal/backend/fixture"
	"taskbox/internal/task"
	"taskbox/internal/taskview"
)

const (
	// LoadingText is printed while the source reports loading.
	LoadingText = "loading..."

	// EmptyText is printed when there is nothing to display.
	EmptyText = "no tasks found"

	// PinMarker follows the title of a pinned task.
	PinMarker = " *"
)

// FormatTask formats a task row.
// Format: "{ID:>4}  [{x| }] {TITLE}{ *}\n"
// Archived tasks are shown checked and never carry the pin marker.
func FormatTask(w io.Writer, t task.Task) {
	check := " "
	if t.Archived() {
		check = "x"
	}
	marker := ""
	if t.Pinned() {
		marker = PinMarker
	}
	fmt.Fprintf(w, "%4d  [%s] %s%s\n", t.ID, check, normalizeTitle(t.Title), marker)
}

// FormatView renders a view. Loading and empty notices are suppressed when quiet.
func FormatView(w io.Writer, v taskview.View, quiet bool) {
	switch v.Phase {
	case taskview.PhaseLoading:
		if !quiet {
			fmt.Fprintln(w, LoadingText)
		}
	case taskview.PhaseEmpty:
		if !quiet {
			fmt.Fprintln(w, EmptyText)
		}
	default:
		for _, t := range v.Rows {
			FormatTask(w, t)
		}
	}
}

// FormatAll renders the full collection in stored order, archived tasks included.
// The loading gate still applies.
func FormatAll(w io.Writer, loading bool, c taskview.Collection, quiet bool) {
	if loading || c.Len() == 0 {
		FormatView(w, taskview.Present(loading, c), quiet)
		return
	}
	for _, t := range c.Tasks() {
		FormatTask(w, t)
	}
}

// FormatStory formats a catalog entry for the stories command.
func FormatStory(w io.Writer, s fixture.Story) {
	note := fmt.Sprintf("%d tasks", len(s.Snapshot.Tasks))
	if s.Snapshot.Loading {
		note = "loading"
	}
	fmt.Fprintf(w, "%-16s %s\n", s.Name, note)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
