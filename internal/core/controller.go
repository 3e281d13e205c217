package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Selection is the transient "task targeted for edit" state. It is never
// persisted. The zero value means nothing is selected.
type Selection struct {
	TaskID int
	Column models.Column
	Row    int
	// Buffer holds the edited field values until CommitEdit.
	Buffer models.Task
}

// Active reports whether a task is selected.
func (s Selection) Active() bool { return s.TaskID != 0 }

// DragState is the transient state of a drag-and-drop gesture. It exists
// only between BeginDrag and EndDrag. The zero value means no drag.
type DragState struct {
	TaskID       int
	SourceColumn models.Column
	SourceRow    int
	Target       models.Column
	HasTarget    bool
}

// Active reports whether a drag is in progress.
func (d DragState) Active() bool { return d.TaskID != 0 }

// Controller translates discrete UI intents into Board operations and owns
// the selection and drag state. Selection and drag are keyed by task ID,
// so a row that shifts underneath them is followed and a task that
// disappears is reported as ErrStaleReference.
type Controller struct {
	board  *Board
	logger *log.Logger

	selection Selection
	drag      DragState
	queue     []Intent
}

// NewController creates a Controller for board. logger may be nil.
func NewController(board *Board, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{board: board, logger: logger}
}

// Board returns the board the controller mutates.
func (c *Controller) Board() *Board { return c.board }

// Selection returns the current selection state.
func (c *Controller) Selection() Selection { return c.selection }

// Drag returns the current drag state.
func (c *Controller) Drag() DragState { return c.drag }

// Find returns the current position of the task with the given ID.
func (c *Controller) Find(id int) (models.Column, int, error) {
	col, row, ok := c.board.Locate(id)
	if !ok {
		return 0, 0, fmt.Errorf("task %d: %w", id, ErrStaleReference)
	}
	return col, row, nil
}

// Create adds task to the planned column.
func (c *Controller) Create(task models.Task) error {
	created, err := c.board.Create(task)
	if err == nil {
		c.logger.Debug("task created", "task_id", created.ID)
	}
	return c.route("creating task", err)
}

// SelectForEdit copies the task at (column, row) into the edit buffer.
func (c *Controller) SelectForEdit(column models.Column, row int) error {
	task, err := c.board.Task(column, row)
	if err != nil {
		return c.route("selecting task", err)
	}
	c.selection = Selection{
		TaskID: task.ID,
		Column: column,
		Row:    row,
		Buffer: task,
	}
	return nil
}

// SetBuffer replaces the edit buffer of the current selection. Buffer
// edits never touch the board or the store.
func (c *Controller) SetBuffer(task models.Task) error {
	if !c.selection.Active() {
		return ErrNoSelection
	}
	task.ID = c.selection.TaskID
	c.selection.Buffer = task
	return nil
}

// ClearSelection drops the selection without changing the board.
func (c *Controller) ClearSelection() {
	c.selection = Selection{}
}

// CommitEdit writes the edit buffer back to the board. The selection is
// cleared after every attempt, whether or not the edit was applied. An
// empty label is rejected; DeleteViaEdit is the explicit way to delete.
func (c *Controller) CommitEdit() error {
	sel := c.selection
	if !sel.Active() {
		return ErrNoSelection
	}
	defer c.ClearSelection()

	column, row, err := c.Find(sel.TaskID)
	if err != nil {
		return c.route("committing edit", err)
	}
	err = c.board.Edit(column, row, sel.Buffer)
	return c.route("committing edit", err)
}

// DeleteViaEdit deletes the selected task and clears the selection.
func (c *Controller) DeleteViaEdit() error {
	sel := c.selection
	if !sel.Active() {
		return ErrNoSelection
	}
	defer c.ClearSelection()

	column, row, err := c.Find(sel.TaskID)
	if err != nil {
		return c.route("deleting task", err)
	}
	_, err = c.board.DeleteViaEdit(column, row)
	return c.route("deleting task", err)
}

// Remove deletes the task at (column, row). A selection or drag that
// pointed at the task is left in place and reports ErrStaleReference when
// it is acted upon.
func (c *Controller) Remove(column models.Column, row int) error {
	removed, err := c.board.Remove(column, row)
	if err == nil || errors.Is(err, ErrPersistence) {
		c.logger.Debug("task removed", "task_id", removed.ID)
	}
	return c.route("removing task", err)
}

// BeginDrag starts dragging the task at (column, row). Only one drag may
// be active at a time.
func (c *Controller) BeginDrag(column models.Column, row int) error {
	if c.drag.Active() {
		return ErrDragInProgress
	}
	task, err := c.board.Task(column, row)
	if err != nil {
		return c.route("starting drag", err)
	}
	c.drag = DragState{
		TaskID:       task.ID,
		SourceColumn: column,
		SourceRow:    row,
	}
	c.logger.Debug("drag started", "task_id", task.ID, "column", column)
	return nil
}

// HoverColumn marks column as the drop target of the active drag.
func (c *Controller) HoverColumn(column models.Column) {
	if !c.drag.Active() || !column.Valid() {
		return
	}
	c.drag.Target = column
	c.drag.HasTarget = true
}

// LeaveColumns clears the drop target: the pointer is over no column.
func (c *Controller) LeaveColumns() {
	c.drag.Target = 0
	c.drag.HasTarget = false
}

// EndDrag finishes the active drag. When released over a target column
// the task is moved there; otherwise the drag is cancelled. The drag
// state is cleared in every case.
func (c *Controller) EndDrag(released bool) error {
	drag := c.drag
	c.drag = DragState{}

	if !drag.Active() || !released || !drag.HasTarget {
		return nil
	}

	column, row, err := c.Find(drag.TaskID)
	if err != nil {
		c.logger.Warn("drop rejected", "task_id", drag.TaskID, "err", err)
		return c.route("dropping task", err)
	}
	err = c.board.Move(column, row, drag.Target)
	if err == nil {
		c.logger.Debug("task dropped", "task_id", drag.TaskID, "from", column, "to", drag.Target)
	}
	return c.route("dropping task", err)
}

// route wraps err with the action name and logs index errors, which mean
// the controller and board disagree.
func (c *Controller) route(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrOutOfRange) {
		c.logger.Error("board index out of range", "action", action, "err", err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
