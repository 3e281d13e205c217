package models

// Board is the persisted state of the task board: exactly ColumnCount
// ordered task lists. Order within a column is display order.
type Board struct {
	Columns [ColumnCount][]Task `json:"columns" yaml:"columns"`
	// NextID is the identifier handed to the next created task. It is
	// always greater than every ID on the board.
	NextID int `json:"next_id,omitempty" yaml:"next_id,omitempty"`
}

// Clone returns a deep copy of the board. Empty columns come back as
// non-nil empty slices so they encode as [] rather than null.
func (b Board) Clone() Board {
	out := Board{NextID: b.NextID}
	for i, col := range b.Columns {
		out.Columns[i] = make([]Task, len(col))
		copy(out.Columns[i], col)
	}
	return out
}

// Len returns the number of tasks across all columns.
func (b Board) Len() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col)
	}
	return n
}

// Column returns the tasks of column c. The slice aliases the board.
func (b Board) Column(c Column) []Task {
	if !c.Valid() {
		return nil
	}
	return b.Columns[c]
}

// Equal reports field-for-field equality of two boards, treating nil and
// empty columns as equal.
func (b Board) Equal(other Board) bool {
	if b.NextID != other.NextID {
		return false
	}
	for i := range b.Columns {
		if len(b.Columns[i]) != len(other.Columns[i]) {
			return false
		}
		for j := range b.Columns[i] {
			if b.Columns[i][j] != other.Columns[i][j] {
				return false
			}
		}
	}
	return true
}
