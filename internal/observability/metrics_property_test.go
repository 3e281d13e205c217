package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Every move into the done column is a completion, and the per-column move
// counts add up to the total number of moves.
func TestProperty_MetricsMovesAddUp(t *testing.T) {
	columns := []string{"planned", "in progress", "done"}

	rapid.Check(t, func(rt *rapid.T) {
		el, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
		if err != nil {
			t.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		wantDone := 0
		for i := 0; i < n; i++ {
			to := rapid.SampledFrom(columns).Draw(rt, fmt.Sprintf("to_%d", i))
			if to == "done" {
				wantDone++
			}
			err := el.Write(Event{
				Time: base.Add(time.Duration(i) * time.Minute),
				Type: "task.moved",
				Data: map[string]any{"task_id": rapid.IntRange(1, 50).Draw(rt, fmt.Sprintf("id_%d", i)), "to": to},
			})
			if err != nil {
				t.Fatalf("writing event: %v", err)
			}
		}

		m, err := NewMetricsCalculator(el, nil).Calculate(base)
		if err != nil {
			t.Fatalf("calculating metrics: %v", err)
		}

		if m.TasksMoved != n {
			rt.Errorf("TasksMoved = %d, want %d", m.TasksMoved, n)
		}
		if m.TasksCompleted != wantDone {
			rt.Errorf("TasksCompleted = %d, want %d", m.TasksCompleted, wantDone)
		}
		sum := 0
		for _, c := range m.MovesInto {
			sum += c
		}
		if sum != n {
			rt.Errorf("sum(MovesInto) = %d, want %d", sum, n)
		}
	})
}
