package core

import (
	"errors"
	"slices"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

func TestFlush_AppliesInOrder(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b"})

	c.Enqueue(
		CreateIntent{Task: task("c")},
		BeginDragIntent{Column: models.ColumnPlanned, Row: 0},
		HoverIntent{Column: models.ColumnDone},
		EndDragIntent{Released: true},
	)
	if c.Pending() != 4 {
		t.Fatalf("Pending() = %d, want 4", c.Pending())
	}
	if len(store.saves) != 0 {
		t.Fatal("queued intents must not run before Flush")
	}

	if errs := c.Flush(); len(errs) != 0 {
		t.Fatalf("Flush() errors = %v", errs)
	}
	if c.Pending() != 0 {
		t.Error("Flush should empty the queue")
	}
	saved := store.last(t)
	if got := columnLabels(saved, models.ColumnPlanned); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("planned = %v", got)
	}
	if got := columnLabels(saved, models.ColumnDone); !slices.Equal(got, []string{"a"}) {
		t.Errorf("done = %v", got)
	}
}

func TestFlush_ContinuesAfterErrors(t *testing.T) {
	c, store := newTestController(t, []string{"a"})

	c.Enqueue(
		CreateIntent{},
		CommitEditIntent{},
		SelectIntent{Column: models.ColumnPlanned, Row: 0},
		BufferIntent{Task: task("a2")},
		CommitEditIntent{},
	)
	errs := c.Flush()
	if len(errs) != 2 {
		t.Fatalf("Flush() returned %d errors, want 2: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], ErrValidationRejected) || !errors.Is(errs[1], ErrNoSelection) {
		t.Errorf("errors out of order: %v", errs)
	}
	if got := columnLabels(store.last(t), models.ColumnPlanned); !slices.Equal(got, []string{"a2"}) {
		t.Errorf("planned = %v", got)
	}
}

func TestFlush_RemoveAndDeleteIntents(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b", "c"})

	c.Enqueue(
		RemoveIntent{Column: models.ColumnPlanned, Row: 0},
		SelectIntent{Column: models.ColumnPlanned, Row: 1},
		DeleteViaEditIntent{},
		BeginDragIntent{Column: models.ColumnPlanned, Row: 0},
		HoverIntent{Column: models.ColumnDone},
		LeaveIntent{},
		EndDragIntent{Released: true},
	)
	if errs := c.Flush(); len(errs) != 0 {
		t.Fatalf("Flush() errors = %v", errs)
	}
	saved := store.last(t)
	if got := columnLabels(saved, models.ColumnPlanned); !slices.Equal(got, []string{"b"}) {
		t.Errorf("planned = %v", got)
	}
	if saved.Len() != 1 {
		t.Errorf("board has %d tasks, want 1", saved.Len())
	}
}

func TestFlush_Empty(t *testing.T) {
	c, _ := newTestController(t)
	if errs := c.Flush(); errs != nil {
		t.Errorf("Flush() on empty queue = %v", errs)
	}
}
