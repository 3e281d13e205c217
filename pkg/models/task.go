package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Column identifies one of the three fixed board columns.
type Column int

const (
	ColumnPlanned Column = iota
	ColumnInProgress
	ColumnDone

	// ColumnCount is the number of columns on every board.
	ColumnCount = 3
)

// columnTitles are the display titles, indexed by Column.
var columnTitles = [ColumnCount]string{"planned", "in progress", "done"}

// String returns the display title of the column.
func (c Column) String() string {
	if !c.Valid() {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnTitles[c]
}

// Valid reports whether c names one of the board columns.
func (c Column) Valid() bool {
	return c >= 0 && int(c) < ColumnCount
}

// AllColumns returns the columns in display order.
func AllColumns() []Column {
	return []Column{ColumnPlanned, ColumnInProgress, ColumnDone}
}

// ParseColumn accepts a column index ("0".."2") or a title. Titles are
// matched case-insensitively and "in_progress", "in-progress" and
// "inprogress" are accepted for the middle column.
func ParseColumn(s string) (Column, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(normalized); err == nil {
		c := Column(n)
		if !c.Valid() {
			return 0, fmt.Errorf("column index %d out of range (0-%d)", n, ColumnCount-1)
		}
		return c, nil
	}

	switch normalized {
	case "planned", "todo":
		return ColumnPlanned, nil
	case "in progress", "in_progress", "in-progress", "inprogress", "doing":
		return ColumnInProgress, nil
	case "done":
		return ColumnDone, nil
	}
	return 0, fmt.Errorf("unknown column %q (use planned, in_progress or done)", s)
}

// Task is a single unit of work on the board. All text fields are free
// form: Date is not validated as a calendar date and Effort is whatever
// duration text the user typed.
type Task struct {
	ID     int    `json:"id,omitempty" yaml:"id,omitempty"`
	Label  string `json:"label" yaml:"label"`
	Date   string `json:"date" yaml:"date"`
	Effort string `json:"effort" yaml:"effort"`
}
