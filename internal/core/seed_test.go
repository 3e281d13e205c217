package core

import (
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

func TestDefaultBoard(t *testing.T) {
	b := DefaultBoard(testOptions())

	planned := b.Column(models.ColumnPlanned)
	if len(planned) != len(seedLabels) {
		t.Fatalf("planned has %d tasks, want %d", len(planned), len(seedLabels))
	}
	for i, tk := range planned {
		if tk.Label != seedLabels[i] || tk.Date != "01.03.25" || tk.Effort != "0h:0m" || tk.ID != i+1 {
			t.Errorf("seed task %d = %+v", i, tk)
		}
	}
	for _, c := range []models.Column{models.ColumnInProgress, models.ColumnDone} {
		if col := b.Column(c); col == nil || len(col) != 0 {
			t.Errorf("%s = %v, want empty non-nil", c, col)
		}
	}
	if b.NextID != len(seedLabels)+1 {
		t.Errorf("NextID = %d", b.NextID)
	}
}

func TestDefaultBoard_FillsDefaults(t *testing.T) {
	b := DefaultBoard(BoardOptions{})
	if b.Column(models.ColumnPlanned)[0].Date == "" {
		t.Error("seed tasks should be dated today when no options are given")
	}
}
