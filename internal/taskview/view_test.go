package taskview_test

import (
	"testing"

	"taskbox/internal/taskview"
)

func TestPresent_LoadingSuppressesRows(t *testing.T) {
	v := taskview.Present(true, taskview.New(sample()))
	if v.Phase != taskview.PhaseLoading {
		t.Errorf("expected loading, got %v", v.Phase)
	}
	if len(v.Rows) != 0 {
		t.Errorf("expected no rows while loading, got %d", len(v.Rows))
	}
}

func TestPresent_Empty(t *testing.T) {
	v := taskview.Present(false, taskview.New(nil))
	if v.Phase != taskview.PhaseEmpty {
		t.Errorf("expected empty, got %v", v.Phase)
	}

	loading := taskview.Present(true, taskview.New(nil))
	if loading.Phase == v.Phase {
		t.Error("empty state must be distinct from loading")
	}
}

func TestPresent_OnlyArchivedIsEmpty(t *testing.T) {
	c := taskview.New(sample()).Archive(1, now).Archive(2, now)
	v := taskview.Present(false, c)
	if v.Phase != taskview.PhaseEmpty {
		t.Errorf("expected empty, got %v", v.Phase)
	}
}

func TestPresent_Ready(t *testing.T) {
	v := taskview.Present(false, taskview.New(sample()))
	if v.Phase != taskview.PhaseReady {
		t.Fatalf("expected ready, got %v", v.Phase)
	}
	if len(v.Rows) != 2 || v.Rows[0].Title != "B" || v.Rows[1].Title != "A" {
		t.Errorf("unexpected rows: %+v", v.Rows)
	}
}

func TestPhaseString(t *testing.T) {
	if taskview.PhaseEmpty.String() != "empty" {
		t.Errorf("unexpected string %q", taskview.PhaseEmpty.String())
	}
}
