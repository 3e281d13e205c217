package observability

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Event types written by the board. They mirror the constants in core so
// this package stays free of a core import.
const (
	eventTaskCreated = "task.created"
	eventTaskEdited  = "task.edited"
	eventTaskRemoved = "task.removed"
	eventTaskMoved   = "task.moved"
)

// BoardCounter reports how many tasks each column currently holds.
type BoardCounter interface {
	Counts() [models.ColumnCount]int
}

// Metrics holds activity figures derived from the event log, plus the
// current column sizes when a board is attached.
type Metrics struct {
	TasksCreated   int            `json:"tasks_created"`
	TasksEdited    int            `json:"tasks_edited"`
	TasksRemoved   int            `json:"tasks_removed"`
	TasksMoved     int            `json:"tasks_moved"`
	TasksCompleted int            `json:"tasks_completed"`
	MovesInto      map[string]int `json:"moves_into"`
	TasksByColumn  map[string]int `json:"tasks_by_column,omitempty"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
	board    BoardCounter
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
// board may be nil, in which case TasksByColumn is left empty.
func NewMetricsCalculator(eventLog EventLog, board BoardCounter) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog, board: board}
}

// Calculate aggregates every event since the given time. A move into the
// done column counts as a completion.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{MovesInto: make(map[string]int)}
	m.EventCount = len(events)

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t

		switch event.Type {
		case eventTaskCreated:
			m.TasksCreated++
		case eventTaskEdited:
			m.TasksEdited++
		case eventTaskRemoved:
			m.TasksRemoved++
		case eventTaskMoved:
			m.TasksMoved++
			to := event.String("to")
			if to != "" {
				m.MovesInto[to]++
			}
			if to == models.ColumnDone.String() {
				m.TasksCompleted++
			}
		}
	}

	if mc.board != nil {
		counts := mc.board.Counts()
		m.TasksByColumn = make(map[string]int, len(counts))
		for i, n := range counts {
			m.TasksByColumn[models.Column(i).String()] = n
		}
	}

	return m, nil
}
