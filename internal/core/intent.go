package core

import "github.com/valter-silva-au/taskboard/pkg/models"

// Intent is a discrete user action collected by the presentation layer.
// Intents are queued with Enqueue and applied in order by Flush, once per
// update cycle, so rendering never mutates the board.
type Intent interface {
	apply(c *Controller) error
}

// CreateIntent submits the create form.
type CreateIntent struct{ Task models.Task }

// SelectIntent targets a task for viewing and editing.
type SelectIntent struct {
	Column models.Column
	Row    int
}

// BufferIntent replaces the edit buffer of the selection.
type BufferIntent struct{ Task models.Task }

// CommitEditIntent submits the edit form.
type CommitEditIntent struct{}

// DeleteViaEditIntent deletes the selected task from the edit form.
type DeleteViaEditIntent struct{}

// RemoveIntent deletes a task from the board view.
type RemoveIntent struct {
	Column models.Column
	Row    int
}

// BeginDragIntent picks up a task.
type BeginDragIntent struct {
	Column models.Column
	Row    int
}

// HoverIntent reports the pointer over a column drop zone.
type HoverIntent struct{ Column models.Column }

// LeaveIntent reports the pointer outside every drop zone.
type LeaveIntent struct{}

// EndDragIntent finishes the drag; Released is false when it is cancelled.
type EndDragIntent struct{ Released bool }

func (i CreateIntent) apply(c *Controller) error      { return c.Create(i.Task) }
func (i SelectIntent) apply(c *Controller) error      { return c.SelectForEdit(i.Column, i.Row) }
func (i BufferIntent) apply(c *Controller) error      { return c.SetBuffer(i.Task) }
func (CommitEditIntent) apply(c *Controller) error    { return c.CommitEdit() }
func (DeleteViaEditIntent) apply(c *Controller) error { return c.DeleteViaEdit() }
func (i RemoveIntent) apply(c *Controller) error      { return c.Remove(i.Column, i.Row) }
func (i BeginDragIntent) apply(c *Controller) error   { return c.BeginDrag(i.Column, i.Row) }
func (i EndDragIntent) apply(c *Controller) error     { return c.EndDrag(i.Released) }

func (i HoverIntent) apply(c *Controller) error {
	c.HoverColumn(i.Column)
	return nil
}

func (LeaveIntent) apply(c *Controller) error {
	c.LeaveColumns()
	return nil
}

// Enqueue adds intents to the pending queue.
func (c *Controller) Enqueue(intents ...Intent) {
	c.queue = append(c.queue, intents...)
}

// Pending returns the number of queued intents.
func (c *Controller) Pending() int { return len(c.queue) }

// Flush applies every queued intent in order and empties the queue. A
// failing intent does not stop the ones after it; the errors are returned
// in queue order.
func (c *Controller) Flush() []error {
	queue := c.queue
	c.queue = nil

	var errs []error
	for _, intent := range queue {
		if err := intent.apply(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
