package output

import (
	"bytes"
	"testing"
	"time"

	"taskbox/internal/backend/fixture"
	"taskbox/internal/task"
	"taskbox/internal/taskview"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task task.Task
		want string
	}{
		{"inbox", task.Task{ID: 1, Title: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"pinned", task.Task{ID: 12, Title: "Call", State: task.StatePinned}, "  12  [ ] Call *\n"},
		{"archived", task.Task{ID: 3, Title: "Old", State: task.StateArchived}, "   3  [x] Old\n"},
		{"multiline", task.Task{ID: 4, Title: "a\r\nb"}, "   4  [ ] a  b\n"},
		{"blank", task.Task{ID: 5, Title: "  "}, "   5  [ ] (untitled)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatView(t *testing.T) {
	c := taskview.New([]task.Task{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", State: task.StatePinned},
		{ID: 3, Title: "C", State: task.StateArchived},
	})

	tests := []struct {
		name    string
		loading bool
		c       taskview.Collection
		quiet   bool
		want    string
	}{
		{"ready", false, c, false, "   2  [ ] B *\n   1  [ ] A\n"},
		{"loading", true, c, false, "loading...\n"},
		{"loading quiet", true, c, true, ""},
		{"empty", false, taskview.New(nil), false, "no tasks found\n"},
		{"empty quiet", false, taskview.New(nil), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatView(&buf, taskview.Present(tt.loading, tt.c), tt.quiet)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatAll(t *testing.T) {
	c := taskview.New([]task.Task{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", State: task.StatePinned},
	}).Archive(2, time.Now())

	var buf bytes.Buffer
	FormatAll(&buf, false, c, false)
	want := "   1  [ ] A\n   2  [x] B\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	FormatAll(&buf, true, c, false)
	if buf.String() != "loading...\n" {
		t.Errorf("expected loading notice, got %q", buf.String())
	}
}

func TestFormatStory(t *testing.T) {
	var buf bytes.Buffer
	for _, s := range fixture.Catalog() {
		FormatStory(&buf, s)
	}
	want := "Default          6 tasks\n" +
		"WithPinnedTasks  6 tasks\n" +
		"Archived         6 tasks\n" +
		"Loading          loading\n" +
		"Empty            0 tasks\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
