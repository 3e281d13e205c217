package core

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Board event types written after each successful mutation.
const (
	EventTaskCreated = "task.created"
	EventTaskEdited  = "task.edited"
	EventTaskRemoved = "task.removed"
	EventTaskMoved   = "task.moved"
)
