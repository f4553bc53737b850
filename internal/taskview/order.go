package taskview

import "taskbox/internal/task"

// Order derives the display sequence from tasks.
// Archived tasks are dropped; pinned tasks come first, then inbox tasks,
// each group keeping its input order.
func Order(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.State == task.StatePinned {
			out = append(out, t)
		}
	}
	for _, t := range tasks {
		if t.State == task.StateInbox {
			out = append(out, t)
		}
	}
	return out
}
