package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// runIntents applies intents through the controller as one update cycle.
func runIntents(intents ...core.Intent) error {
	Controller.Enqueue(intents...)
	return errors.Join(Controller.Flush()...)
}

// parseTaskID reads a task ID argument, accepting an optional leading '#'.
func parseTaskID(arg string) (int, error) {
	if len(arg) > 0 && arg[0] == '#' {
		arg = arg[1:]
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID %q: must be a positive integer", arg)
	}
	return id, nil
}

// findTask resolves id to the task and its current position.
func findTask(id int) (models.Task, models.Column, int, error) {
	col, row, err := Controller.Find(id)
	if err != nil {
		return models.Task{}, 0, 0, fmt.Errorf("task %d not found", id)
	}
	task, err := Controller.Board().Task(col, row)
	if err != nil {
		return models.Task{}, 0, 0, fmt.Errorf("reading task %d: %w", id, err)
	}
	return task, col, row, nil
}
