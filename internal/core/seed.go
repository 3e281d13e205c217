package core

import "github.com/valter-silva-au/taskboard/pkg/models"

// seedLabels are the sample tasks placed in the planned column of a new board.
var seedLabels = []string{
	"Education Rust",
	"Education C++",
	"Education Assembler",
	"Education English",
	"Education Painting",
}

// DefaultBoard returns the board used when no persisted state exists: the
// sample tasks in the planned column, dated today, and two empty columns.
func DefaultBoard(opts BoardOptions) models.Board {
	opts = opts.withDefaults()
	today := opts.Now().Format(opts.DateFormat)

	var board models.Board
	board.Columns[models.ColumnPlanned] = make([]models.Task, 0, len(seedLabels))
	for i, label := range seedLabels {
		board.Columns[models.ColumnPlanned] = append(board.Columns[models.ColumnPlanned], models.Task{
			ID:     i + 1,
			Label:  label,
			Date:   today,
			Effort: opts.DefaultEffort,
		})
	}
	board.Columns[models.ColumnInProgress] = []models.Task{}
	board.Columns[models.ColumnDone] = []models.Task{}
	board.NextID = len(seedLabels) + 1
	return board
}
