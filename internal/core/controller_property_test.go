package core

import (
	"errors"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"pgregory.net/rapid"
)

var controllerSentinels = []error{
	ErrValidationRejected,
	ErrOutOfRange,
	ErrStaleReference,
	ErrPersistence,
	ErrDragInProgress,
	ErrNoSelection,
}

func isControllerSentinel(err error) bool {
	for _, sentinel := range controllerSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func genDraftTask(t *rapid.T) models.Task {
	tk := genTask(t)
	if rapid.IntRange(0, 4).Draw(t, "clear label") == 0 {
		tk.Label = ""
	}
	return tk
}

// checkControllerInvariants verifies the board shape after every step:
// three non-nil columns and each task ID present exactly once.
func checkControllerInvariants(t *rapid.T, b *Board) {
	snap := b.Snapshot()
	if len(snap.Columns) != models.ColumnCount {
		t.Fatalf("board has %d columns", len(snap.Columns))
	}
	seen := map[int]bool{}
	for c, col := range snap.Columns {
		if col == nil {
			t.Fatalf("column %d is nil", c)
		}
		for _, tk := range col {
			if tk.ID <= 0 || seen[tk.ID] {
				t.Fatalf("bad or duplicate ID %d", tk.ID)
			}
			seen[tk.ID] = true
		}
	}
}

// Random intent sequences, including ones that act on tasks removed in
// the meantime, only ever fail with a known error and never leave the
// drag or an attempted edit behind.
func TestProperty_ControllerIntents(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := &memStore{board: func() *models.Board { b := DefaultBoard(testOptions()); return &b }()}
		b := NewBoard(store, nil, testOptions())
		if err := b.Load(); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		c := NewController(b, nil)

		// run applies one intent through the queue and returns its error.
		run := func(t *rapid.T, intent Intent) error {
			c.Enqueue(intent)
			errs := c.Flush()
			if c.Pending() != 0 {
				t.Fatalf("Pending() = %d after Flush", c.Pending())
			}
			if len(errs) > 1 {
				t.Fatalf("one intent produced %d errors", len(errs))
			}
			if len(errs) == 0 {
				return nil
			}
			if !isControllerSentinel(errs[0]) {
				t.Fatalf("unclassified error %v", errs[0])
			}
			return errs[0]
		}
		// mutated reports whether err still leaves the mutation applied.
		mutated := func(err error) bool {
			return err == nil || errors.Is(err, ErrPersistence)
		}
		position := func(t *rapid.T) (models.Column, int) {
			col := genColumn(t, "column")
			row := rapid.IntRange(0, b.Counts()[col]).Draw(t, "row")
			return col, row
		}

		t.Repeat(map[string]func(*rapid.T){
			"create": func(t *rapid.T) {
				draft := genDraftTask(t)
				before := b.Snapshot().Len()
				err := run(t, CreateIntent{Task: draft})
				switch {
				case draft.Label == "":
					if !errors.Is(err, ErrValidationRejected) || b.Snapshot().Len() != before {
						t.Fatalf("empty create: err = %v", err)
					}
				case !mutated(err) || b.Snapshot().Len() != before+1:
					t.Fatalf("create: err = %v, len %d -> %d", err, before, b.Snapshot().Len())
				}
			},
			"select": func(t *rapid.T) {
				col, row := position(t)
				want, lookupErr := b.Task(col, row)
				err := run(t, SelectIntent{Column: col, Row: row})
				if lookupErr != nil {
					if !errors.Is(err, ErrOutOfRange) {
						t.Fatalf("select past the end: err = %v", err)
					}
					return
				}
				if err != nil || c.Selection().TaskID != want.ID {
					t.Fatalf("select: err = %v, selection = %+v", err, c.Selection())
				}
			},
			"buffer": func(t *rapid.T) {
				active := c.Selection().Active()
				saves := len(store.saves)
				err := run(t, BufferIntent{Task: genDraftTask(t)})
				if !active && !errors.Is(err, ErrNoSelection) {
					t.Fatalf("buffer without selection: err = %v", err)
				}
				if len(store.saves) != saves {
					t.Fatal("buffer edits must not save")
				}
			},
			"commit edit": func(t *rapid.T) {
				before := b.Snapshot().Len()
				_ = run(t, CommitEditIntent{})
				if c.Selection().Active() {
					t.Fatal("selection survived a commit attempt")
				}
				if b.Snapshot().Len() != before {
					t.Fatal("commit changed the task count")
				}
			},
			"delete via edit": func(t *rapid.T) {
				sel := c.Selection()
				before := b.Snapshot().Len()
				err := run(t, DeleteViaEditIntent{})
				if c.Selection().Active() {
					t.Fatal("selection survived a delete attempt")
				}
				if mutated(err) {
					if _, _, ok := b.Locate(sel.TaskID); ok || b.Snapshot().Len() != before-1 {
						t.Fatalf("task %d was not deleted", sel.TaskID)
					}
				}
			},
			"remove": func(t *rapid.T) {
				col, row := position(t)
				before := b.Snapshot().Len()
				err := run(t, RemoveIntent{Column: col, Row: row})
				want := before
				if mutated(err) {
					want--
				}
				if b.Snapshot().Len() != want {
					t.Fatalf("remove: err = %v, len %d -> %d", err, before, b.Snapshot().Len())
				}
			},
			"begin drag": func(t *rapid.T) {
				col, row := position(t)
				prior := c.Drag()
				err := run(t, BeginDragIntent{Column: col, Row: row})
				if prior.Active() {
					if !errors.Is(err, ErrDragInProgress) || c.Drag() != prior {
						t.Fatalf("second drag: err = %v, drag = %+v", err, c.Drag())
					}
					return
				}
				if (err == nil) != c.Drag().Active() {
					t.Fatalf("begin drag: err = %v, drag = %+v", err, c.Drag())
				}
			},
			"hover": func(t *rapid.T) {
				_ = run(t, HoverIntent{Column: genColumn(t, "target")})
				if !c.Drag().Active() && c.Drag().HasTarget {
					t.Fatal("hover set a target without a drag")
				}
			},
			"leave": func(t *rapid.T) {
				_ = run(t, LeaveIntent{})
				if c.Drag().HasTarget {
					t.Fatal("leave kept the drop target")
				}
			},
			"end drag": func(t *rapid.T) {
				before := b.Snapshot().Len()
				err := run(t, EndDragIntent{Released: rapid.Bool().Draw(t, "released")})
				if c.Drag().Active() {
					t.Fatal("drag survived EndDrag")
				}
				if b.Snapshot().Len() != before {
					t.Fatalf("drop changed the task count: err = %v", err)
				}
			},
			"toggle save failure": func(t *rapid.T) {
				if store.saveErr == nil {
					store.saveErr = errors.New("disk full")
				} else {
					store.saveErr = nil
				}
			},
			"": func(t *rapid.T) {
				checkControllerInvariants(t, b)
			},
		})
	})
}
