package core

import "errors"

// Board and controller failure conditions. Callers classify errors with
// errors.Is; the wrapped message carries the details.
var (
	// ErrValidationRejected reports an empty label on create or edit. The
	// UI ignores it so typing is never interrupted.
	ErrValidationRejected = errors.New("task label must not be empty")

	// ErrOutOfRange reports an invalid column or row index. It indicates
	// a controller/board desync and is never shown to the user.
	ErrOutOfRange = errors.New("index out of range")

	// ErrStaleReference reports that the task targeted by a drag or edit
	// no longer exists.
	ErrStaleReference = errors.New("task no longer exists")

	// ErrPersistence reports a failed board write. The mutation itself is
	// kept in memory.
	ErrPersistence = errors.New("saving board")

	// ErrDragInProgress is returned when a drag starts while another drag
	// is active.
	ErrDragInProgress = errors.New("a drag is already in progress")

	// ErrNoSelection is returned by edit actions when no task is selected.
	ErrNoSelection = errors.New("no task selected")
)
