package core

import (
	"errors"
	"slices"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

func newTestController(t *testing.T, columns ...[]string) (*Controller, *memStore) {
	t.Helper()
	b, store, _ := newTestBoard(t, columns...)
	return NewController(b, nil), store
}

func TestController_Create(t *testing.T) {
	c, store := newTestController(t)

	if err := c.Create(task("a")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := columnLabels(store.last(t), models.ColumnPlanned); !slices.Equal(got, []string{"a"}) {
		t.Errorf("planned = %v", got)
	}
	if err := c.Create(models.Task{}); !errors.Is(err, ErrValidationRejected) {
		t.Errorf("empty label: error = %v", err)
	}
}

func TestController_EditFlow(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b"})

	if err := c.SelectForEdit(models.ColumnPlanned, 0); err != nil {
		t.Fatalf("SelectForEdit() error = %v", err)
	}
	sel := c.Selection()
	if !sel.Active() || sel.TaskID != 1 || sel.Buffer.Label != "a" {
		t.Fatalf("selection = %+v", sel)
	}

	if err := c.SetBuffer(models.Task{ID: 42, Label: "a2", Date: "d", Effort: "e"}); err != nil {
		t.Fatalf("SetBuffer() error = %v", err)
	}
	if c.Selection().Buffer.ID != 1 {
		t.Error("the buffer must keep the selected task's ID")
	}
	if len(store.saves) != 0 {
		t.Error("buffer edits must not save")
	}

	if err := c.CommitEdit(); err != nil {
		t.Fatalf("CommitEdit() error = %v", err)
	}
	if c.Selection().Active() {
		t.Error("commit should clear the selection")
	}
	saved := store.last(t)
	if got := columnLabels(saved, models.ColumnPlanned); !slices.Equal(got, []string{"b", "a2"}) {
		t.Errorf("planned = %v", got)
	}
}

func TestController_CommitEmptyLabelClearsSelection(t *testing.T) {
	c, store := newTestController(t, []string{"a"})

	_ = c.SelectForEdit(models.ColumnPlanned, 0)
	_ = c.SetBuffer(models.Task{})
	if err := c.CommitEdit(); !errors.Is(err, ErrValidationRejected) {
		t.Fatalf("CommitEdit() error = %v, want ErrValidationRejected", err)
	}
	if c.Selection().Active() {
		t.Error("selection should be cleared after a rejected commit")
	}
	if len(store.saves) != 0 {
		t.Error("rejected commit must not save")
	}
}

func TestController_SelectionFollowsShiftedRow(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b", "c"})

	_ = c.SelectForEdit(models.ColumnPlanned, 2)
	if err := c.Remove(models.ColumnPlanned, 0); err != nil {
		t.Fatal(err)
	}
	_ = c.SetBuffer(task("C"))
	if err := c.CommitEdit(); err != nil {
		t.Fatalf("CommitEdit() error = %v", err)
	}
	if got := columnLabels(store.last(t), models.ColumnPlanned); !slices.Equal(got, []string{"b", "C"}) {
		t.Errorf("planned = %v", got)
	}
}

func TestController_CommitStaleSelection(t *testing.T) {
	c, _ := newTestController(t, []string{"a", "b"})

	_ = c.SelectForEdit(models.ColumnPlanned, 0)
	if err := c.Remove(models.ColumnPlanned, 0); err != nil {
		t.Fatal(err)
	}
	if !c.Selection().Active() {
		t.Fatal("remove should leave the selection for re-validation")
	}

	err := c.CommitEdit()
	if !errors.Is(err, ErrStaleReference) {
		t.Fatalf("CommitEdit() error = %v, want ErrStaleReference", err)
	}
	if got := c.Board().Snapshot(); !slices.Equal(columnLabels(got, models.ColumnPlanned), []string{"b"}) {
		t.Error("stale commit must not touch another task")
	}
}

func TestController_DeleteViaEdit(t *testing.T) {
	c, store := newTestController(t, nil, []string{"a", "b"})

	_ = c.SelectForEdit(models.ColumnInProgress, 1)
	if err := c.DeleteViaEdit(); err != nil {
		t.Fatalf("DeleteViaEdit() error = %v", err)
	}
	if c.Selection().Active() {
		t.Error("delete should clear the selection")
	}
	if got := columnLabels(store.last(t), models.ColumnInProgress); !slices.Equal(got, []string{"a"}) {
		t.Errorf("in progress = %v", got)
	}
}

func TestController_EditActionsWithoutSelection(t *testing.T) {
	c, _ := newTestController(t, []string{"a"})

	if err := c.SetBuffer(task("x")); !errors.Is(err, ErrNoSelection) {
		t.Errorf("SetBuffer() error = %v", err)
	}
	if err := c.CommitEdit(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("CommitEdit() error = %v", err)
	}
	if err := c.DeleteViaEdit(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("DeleteViaEdit() error = %v", err)
	}
	if err := c.SelectForEdit(models.ColumnDone, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SelectForEdit() on empty column error = %v", err)
	}
}

func TestController_DragAndDrop(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b"}, []string{"c"})

	if err := c.BeginDrag(models.ColumnPlanned, 1); err != nil {
		t.Fatalf("BeginDrag() error = %v", err)
	}
	drag := c.Drag()
	if !drag.Active() || drag.TaskID != 2 || drag.SourceColumn != models.ColumnPlanned || drag.SourceRow != 1 || drag.HasTarget {
		t.Fatalf("drag = %+v", drag)
	}

	c.HoverColumn(models.ColumnDone)
	c.HoverColumn(models.ColumnInProgress)
	if drag := c.Drag(); drag.Target != models.ColumnInProgress || !drag.HasTarget {
		t.Fatalf("hover should retarget, drag = %+v", drag)
	}

	if err := c.EndDrag(true); err != nil {
		t.Fatalf("EndDrag() error = %v", err)
	}
	if c.Drag().Active() {
		t.Error("drag should end")
	}
	saved := store.last(t)
	if got := columnLabels(saved, models.ColumnInProgress); !slices.Equal(got, []string{"c", "b"}) {
		t.Errorf("in progress = %v", got)
	}
}

func TestController_DragCancelled(t *testing.T) {
	tests := []struct {
		name     string
		hover    bool
		leave    bool
		released bool
	}{
		{"released with no target", false, false, true},
		{"released after leaving", true, true, true},
		{"cancelled over a column", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestController(t, []string{"a"})

			_ = c.BeginDrag(models.ColumnPlanned, 0)
			if tt.hover {
				c.HoverColumn(models.ColumnDone)
			}
			if tt.leave {
				c.LeaveColumns()
			}
			if err := c.EndDrag(tt.released); err != nil {
				t.Fatalf("EndDrag() error = %v", err)
			}
			if c.Drag().Active() || len(store.saves) != 0 {
				t.Error("a cancelled drag must clear state and leave the board alone")
			}
		})
	}
}

func TestController_SecondDragRejected(t *testing.T) {
	c, _ := newTestController(t, []string{"a", "b"})

	_ = c.BeginDrag(models.ColumnPlanned, 0)
	if err := c.BeginDrag(models.ColumnPlanned, 1); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("BeginDrag() error = %v, want ErrDragInProgress", err)
	}
	if c.Drag().TaskID != 1 {
		t.Error("the first drag should be kept")
	}
}

func TestController_HoverWithoutDragIgnored(t *testing.T) {
	c, _ := newTestController(t, []string{"a"})

	c.HoverColumn(models.ColumnDone)
	if c.Drag().HasTarget {
		t.Error("hover without a drag should do nothing")
	}
	if err := c.EndDrag(true); err != nil {
		t.Errorf("EndDrag() without a drag error = %v", err)
	}
}

func TestController_StaleDrop(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b"})

	_ = c.BeginDrag(models.ColumnPlanned, 0)
	c.HoverColumn(models.ColumnDone)
	if err := c.Remove(models.ColumnPlanned, 0); err != nil {
		t.Fatal(err)
	}
	saves := len(store.saves)

	err := c.EndDrag(true)
	if !errors.Is(err, ErrStaleReference) {
		t.Fatalf("EndDrag() error = %v, want ErrStaleReference", err)
	}
	if c.Drag().Active() {
		t.Error("stale drop should still clear the drag")
	}
	if len(store.saves) != saves {
		t.Error("stale drop must not save")
	}
	if got := c.Board().Counts(); got != [models.ColumnCount]int{1, 0, 0} {
		t.Errorf("counts = %v", got)
	}
}

func TestController_DropFollowsShiftedSource(t *testing.T) {
	c, store := newTestController(t, []string{"a", "b", "c"})

	_ = c.BeginDrag(models.ColumnPlanned, 2)
	c.HoverColumn(models.ColumnDone)
	_ = c.Remove(models.ColumnPlanned, 0)

	if err := c.EndDrag(true); err != nil {
		t.Fatalf("EndDrag() error = %v", err)
	}
	if got := columnLabels(store.last(t), models.ColumnDone); !slices.Equal(got, []string{"c"}) {
		t.Errorf("done = %v, want the dragged task", got)
	}
}

func TestController_PersistenceErrorRouted(t *testing.T) {
	c, store := newTestController(t, []string{"a"})
	store.saveErr = errors.New("read-only file system")

	err := c.Remove(models.ColumnPlanned, 0)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("Remove() error = %v, want ErrPersistence", err)
	}
	if c.Board().Snapshot().Len() != 0 {
		t.Error("the removal should stay in memory")
	}
}

func TestController_Find(t *testing.T) {
	c, _ := newTestController(t, []string{"a"}, []string{"b"})

	col, row, err := c.Find(2)
	if err != nil || col != models.ColumnInProgress || row != 0 {
		t.Errorf("Find(2) = %v, %d, %v", col, row, err)
	}
	if _, _, err := c.Find(9); !errors.Is(err, ErrStaleReference) {
		t.Errorf("Find(9) error = %v", err)
	}
}
