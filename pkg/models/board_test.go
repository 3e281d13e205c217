package models

import "testing"

func TestBoard_CloneIsDeep(t *testing.T) {
	var b Board
	b.Columns[ColumnPlanned] = []Task{{ID: 1, Label: "a"}}
	b.NextID = 2

	c := b.Clone()
	c.Columns[ColumnPlanned][0].Label = "changed"
	c.Columns[ColumnDone] = append(c.Columns[ColumnDone], Task{ID: 2, Label: "b"})

	if b.Columns[ColumnPlanned][0].Label != "a" || len(b.Columns[ColumnDone]) != 0 {
		t.Error("changing the clone changed the original")
	}
	for i, col := range b.Clone().Columns {
		if col == nil {
			t.Errorf("cloned column %d is nil", i)
		}
	}
}

func TestBoard_Equal(t *testing.T) {
	var a, b Board
	b.Columns[ColumnDone] = []Task{}
	if !a.Equal(b) {
		t.Error("nil and empty columns should be equal")
	}

	b.Columns[ColumnDone] = []Task{{Label: "x"}}
	if a.Equal(b) {
		t.Error("boards with different tasks should differ")
	}

	a = b.Clone()
	a.NextID = 9
	if a.Equal(b) {
		t.Error("boards with different NextID should differ")
	}
}

func TestBoard_LenAndColumn(t *testing.T) {
	var b Board
	b.Columns[ColumnPlanned] = []Task{{Label: "a"}, {Label: "b"}}
	b.Columns[ColumnDone] = []Task{{Label: "c"}}

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if len(b.Column(ColumnPlanned)) != 2 {
		t.Error("Column(planned) should return two tasks")
	}
	if b.Column(Column(5)) != nil {
		t.Error("Column() of an invalid column should be nil")
	}
}
