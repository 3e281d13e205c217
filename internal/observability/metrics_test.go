package observability

import (
	"testing"
	"time"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

type fakeCounter [models.ColumnCount]int

func (f fakeCounter) Counts() [models.ColumnCount]int { return f }

func TestMetrics_CountsBoardActivity(t *testing.T) {
	el, _ := newTestLog(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	writeAll(t, el,
		Event{Time: base, Type: "task.created", Data: map[string]any{"task_id": 1}},
		Event{Time: base.Add(time.Minute), Type: "task.created", Data: map[string]any{"task_id": 2}},
		Event{Time: base.Add(2 * time.Minute), Type: "task.moved", Data: map[string]any{"task_id": 1, "from": "planned", "to": "in progress"}},
		Event{Time: base.Add(3 * time.Minute), Type: "task.moved", Data: map[string]any{"task_id": 1, "from": "in progress", "to": "done"}},
		Event{Time: base.Add(4 * time.Minute), Type: "task.edited", Data: map[string]any{"task_id": 2}},
		Event{Time: base.Add(5 * time.Minute), Type: "task.removed", Data: map[string]any{"task_id": 2}},
	)

	calc := NewMetricsCalculator(el, fakeCounter{0, 0, 1})
	m, err := calc.Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.TasksCreated != 2 || m.TasksEdited != 1 || m.TasksRemoved != 1 || m.TasksMoved != 2 {
		t.Errorf("unexpected counts: %+v", m)
	}
	if m.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1", m.TasksCompleted)
	}
	if m.MovesInto["in progress"] != 1 || m.MovesInto["done"] != 1 {
		t.Errorf("MovesInto = %v", m.MovesInto)
	}
	if m.TasksByColumn["done"] != 1 || m.TasksByColumn["planned"] != 0 {
		t.Errorf("TasksByColumn = %v", m.TasksByColumn)
	}
	if m.EventCount != 6 {
		t.Errorf("EventCount = %d, want 6", m.EventCount)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(5*time.Minute)) {
		t.Errorf("NewestEvent = %v", m.NewestEvent)
	}
}

func TestMetrics_SinceExcludesOlderEvents(t *testing.T) {
	el, _ := newTestLog(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	writeAll(t, el,
		Event{Time: base, Type: "task.created"},
		Event{Time: base.Add(48 * time.Hour), Type: "task.created"},
	)

	m, err := NewMetricsCalculator(el, nil).Calculate(base.Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.TasksCreated != 1 {
		t.Errorf("TasksCreated = %d, want 1", m.TasksCreated)
	}
	if m.TasksByColumn != nil {
		t.Errorf("TasksByColumn should be nil without a board, got %v", m.TasksByColumn)
	}
}

func TestMetrics_EmptyLog(t *testing.T) {
	el, _ := newTestLog(t)
	m, err := NewMetricsCalculator(el, nil).Calculate(time.Time{})
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.NewestEvent != nil {
		t.Errorf("expected empty metrics, got %+v", m)
	}
}
