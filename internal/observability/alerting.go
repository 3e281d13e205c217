package observability

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts fire. A zero value disables the
// corresponding check.
type AlertThresholds struct {
	WIPLimit   int `yaml:"wip_limit" json:"wip_limit"`
	MaxPlanned int `yaml:"max_planned" json:"max_planned"`
	StaleDays  int `yaml:"stale_days" json:"stale_days"`
}

// ThresholdsFromConfig converts the alerts section of the config.
func ThresholdsFromConfig(cfg models.AlertConfig) AlertThresholds {
	return AlertThresholds{
		WIPLimit:   cfg.WIPLimit,
		MaxPlanned: cfg.MaxPlanned,
		StaleDays:  cfg.StaleDays,
	}
}

// AlertEngine evaluates alert conditions against the board and event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

type alertEngine struct {
	eventLog   EventLog
	board      BoardCounter
	thresholds AlertThresholds
	now        func() time.Time
}

// NewAlertEngine creates an AlertEngine. board may be nil, which disables
// the column size checks.
func NewAlertEngine(eventLog EventLog, board BoardCounter, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		board:      board,
		thresholds: thresholds,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate checks every condition and returns the alerts that fired.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := ae.now()
	var alerts []Alert

	if ae.board != nil {
		counts := ae.board.Counts()
		alerts = append(alerts, ae.checkWIPLimit(counts, now)...)
		alerts = append(alerts, ae.checkPlannedSize(counts, now)...)
	}

	staleAlerts, err := ae.checkStaleInProgress(now)
	if err != nil {
		return nil, fmt.Errorf("checking stale tasks: %w", err)
	}
	alerts = append(alerts, staleAlerts...)

	return alerts, nil
}

func (ae *alertEngine) checkWIPLimit(counts [models.ColumnCount]int, now time.Time) []Alert {
	limit := ae.thresholds.WIPLimit
	n := counts[models.ColumnInProgress]
	if limit <= 0 || n <= limit {
		return nil
	}
	return []Alert{{
		ID:          "wip-limit",
		Condition:   "wip_limit_exceeded",
		Severity:    SeverityHigh,
		Message:     fmt.Sprintf("%d tasks in progress, limit is %d", n, limit),
		TriggeredAt: now,
	}}
}

func (ae *alertEngine) checkPlannedSize(counts [models.ColumnCount]int, now time.Time) []Alert {
	limit := ae.thresholds.MaxPlanned
	n := counts[models.ColumnPlanned]
	if limit <= 0 || n <= limit {
		return nil
	}
	return []Alert{{
		ID:          "planned-size",
		Condition:   "planned_too_large",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("%d tasks planned, exceeds threshold of %d", n, limit),
		TriggeredAt: now,
	}}
}

// checkStaleInProgress replays the event log to find tasks that sit in the
// in-progress column with no activity for longer than StaleDays.
func (ae *alertEngine) checkStaleInProgress(now time.Time) ([]Alert, error) {
	if ae.thresholds.StaleDays <= 0 {
		return nil, nil
	}

	events, err := ae.eventLog.Read(EventFilter{})
	if err != nil {
		return nil, err
	}

	type taskState struct {
		label      string
		column     string
		lastActive time.Time
	}
	tasks := make(map[int]*taskState)

	for _, event := range events {
		id, ok := event.TaskID()
		if !ok {
			continue
		}
		switch event.Type {
		case eventTaskCreated:
			tasks[id] = &taskState{label: event.String("label"), column: models.ColumnPlanned.String(), lastActive: event.Time}
		case eventTaskMoved:
			st := tasks[id]
			if st == nil {
				st = &taskState{}
				tasks[id] = st
			}
			st.column = event.String("to")
			st.label = event.String("label")
			st.lastActive = event.Time
		case eventTaskEdited:
			if st := tasks[id]; st != nil {
				st.label = event.String("label")
				st.lastActive = event.Time
			}
		case eventTaskRemoved:
			delete(tasks, id)
		}
	}

	ids := make([]int, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	threshold := time.Duration(ae.thresholds.StaleDays) * 24 * time.Hour
	var alerts []Alert
	for _, id := range ids {
		st := tasks[id]
		if st.column != models.ColumnInProgress.String() || now.Sub(st.lastActive) <= threshold {
			continue
		}
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("stale-%d", id),
			Condition:   "task_stale",
			Severity:    SeverityMedium,
			Message:     fmt.Sprintf("task %d %q has been in progress with no activity for more than %d days", id, st.label, ae.thresholds.StaleDays),
			TriggeredAt: now,
		})
	}
	return alerts, nil
}
