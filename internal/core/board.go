package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// BoardStore is the persistence gateway used by the Board. Load always
// returns a usable board when the returned board is non-nil; a non-nil
// error alongside it reports a failure that was recovered from (for
// example an unreadable file replaced by the seed board).
type BoardStore interface {
	Load() (*models.Board, error)
	Save(board *models.Board) error
}

// BoardOptions configures how new tasks are drafted.
type BoardOptions struct {
	// DateFormat is a time layout for the default task date.
	DateFormat string
	// DefaultEffort is the effort text of a freshly drafted task.
	DefaultEffort string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (o BoardOptions) withDefaults() BoardOptions {
	if o.DateFormat == "" {
		o.DateFormat = DefaultGlobalConfig().Board.DateFormat
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Board is the task board aggregate. It holds the three columns and
// provides the only sanctioned mutation operations. Every successful
// mutation is written through to the store in full.
type Board struct {
	mu     sync.Mutex
	data   models.Board
	store  BoardStore
	events EventLogger
	opts   BoardOptions
}

// NewBoard creates an empty Board backed by store. Call Load to read the
// persisted state. events may be nil.
func NewBoard(store BoardStore, events EventLogger, opts BoardOptions) *Board {
	b := &Board{
		store:  store,
		events: events,
		opts:   opts.withDefaults(),
	}
	for i := range b.data.Columns {
		b.data.Columns[i] = []models.Task{}
	}
	b.data.NextID = 1
	return b
}

// Load replaces the in-memory board with the persisted one. Tasks without
// a usable ID are numbered and the board is saved again if that changed
// anything. When the store recovered from a failure the recovered board is
// kept and the failure is returned wrapped in ErrPersistence.
func (b *Board) Load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, loadErr := b.store.Load()
	if data == nil {
		if loadErr == nil {
			loadErr = fmt.Errorf("store returned no board")
		}
		return fmt.Errorf("loading board: %w: %w", ErrPersistence, loadErr)
	}

	b.data = data.Clone()
	if normalizeIDs(&b.data) {
		if err := b.persist(); err != nil {
			return err
		}
	}

	if loadErr != nil {
		return fmt.Errorf("loading board: %w: %w", ErrPersistence, loadErr)
	}
	return nil
}

// NewTask returns an unsaved task with the default date (today) and effort.
func (b *Board) NewTask() models.Task {
	return models.Task{
		Date:   b.opts.Now().Format(b.opts.DateFormat),
		Effort: b.opts.DefaultEffort,
	}
}

// Snapshot returns a deep copy of the board for rendering.
func (b *Board) Snapshot() models.Board {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.Clone()
}

// Counts returns the number of tasks in each column.
func (b *Board) Counts() [models.ColumnCount]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	var counts [models.ColumnCount]int
	for i, col := range b.data.Columns {
		counts[i] = len(col)
	}
	return counts
}

// Task returns the task at (column, row).
func (b *Board) Task(column models.Column, row int) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkIndex(column, row); err != nil {
		return models.Task{}, err
	}
	return b.data.Columns[column][row], nil
}

// Locate returns the current position of the task with the given ID.
func (b *Board) Locate(id int) (models.Column, int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locate(id)
}

// Create appends task to the planned column and assigns it an ID. An
// empty label is rejected with ErrValidationRejected and nothing changes.
func (b *Board) Create(task models.Task) (models.Task, error) {
	if task.Label == "" {
		return models.Task{}, ErrValidationRejected
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task.ID = b.data.NextID
	b.data.NextID++
	b.data.Columns[models.ColumnPlanned] = append(b.data.Columns[models.ColumnPlanned], task)

	b.logEvent(EventTaskCreated, map[string]any{
		"task_id": task.ID,
		"label":   task.Label,
		"column":  models.ColumnPlanned.String(),
	})
	return task, b.persist()
}

// Edit replaces the task at (column, row) with updated: the old task is
// removed and updated is appended to the end of the same column, keeping
// the original ID. An empty label is rejected with ErrValidationRejected
// and the board is left untouched; use DeleteViaEdit to delete.
func (b *Board) Edit(column models.Column, row int, updated models.Task) error {
	if updated.Label == "" {
		return ErrValidationRejected
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkIndex(column, row); err != nil {
		return fmt.Errorf("editing task: %w", err)
	}

	var old models.Task
	b.data.Columns[column], old = removeAt(b.data.Columns[column], row)
	updated.ID = old.ID
	b.data.Columns[column] = append(b.data.Columns[column], updated)

	b.logEvent(EventTaskEdited, map[string]any{
		"task_id": updated.ID,
		"label":   updated.Label,
		"column":  column.String(),
	})
	return b.persist()
}

// DeleteViaEdit deletes the task at (column, row) as the outcome of an
// edit whose label was cleared.
func (b *Board) DeleteViaEdit(column models.Column, row int) (models.Task, error) {
	return b.remove(column, row, "edit")
}

// Remove deletes the task at (column, row).
func (b *Board) Remove(column models.Column, row int) (models.Task, error) {
	return b.remove(column, row, "remove")
}

func (b *Board) remove(column models.Column, row int, via string) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkIndex(column, row); err != nil {
		return models.Task{}, fmt.Errorf("removing task: %w", err)
	}

	var removed models.Task
	b.data.Columns[column], removed = removeAt(b.data.Columns[column], row)

	b.logEvent(EventTaskRemoved, map[string]any{
		"task_id": removed.ID,
		"label":   removed.Label,
		"column":  column.String(),
		"via":     via,
	})
	return removed, b.persist()
}

// Move removes the task at (source, row) and appends it to the end of
// dest. Moving within one column sends the task to the end of it.
func (b *Board) Move(source models.Column, row int, dest models.Column) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkIndex(source, row); err != nil {
		return fmt.Errorf("moving task: %w", err)
	}
	if !dest.Valid() {
		return fmt.Errorf("moving task: %w: destination column %d", ErrOutOfRange, int(dest))
	}

	var task models.Task
	b.data.Columns[source], task = removeAt(b.data.Columns[source], row)
	b.data.Columns[dest] = append(b.data.Columns[dest], task)

	b.logEvent(EventTaskMoved, map[string]any{
		"task_id": task.ID,
		"label":   task.Label,
		"from":    source.String(),
		"to":      dest.String(),
	})
	return b.persist()
}

// persist writes the full board. Callers hold b.mu.
func (b *Board) persist() error {
	if b.store == nil {
		return nil
	}
	snapshot := b.data.Clone()
	if err := b.store.Save(&snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (b *Board) logEvent(eventType string, data map[string]any) {
	if b.events == nil {
		return
	}
	_ = b.events.LogEvent(eventType, data) // Non-fatal: the board is the source of truth.
}

func (b *Board) checkIndex(column models.Column, row int) error {
	if !column.Valid() {
		return fmt.Errorf("%w: column %d", ErrOutOfRange, int(column))
	}
	if n := len(b.data.Columns[column]); row < 0 || row >= n {
		return fmt.Errorf("%w: row %d in column %q with %d task(s)", ErrOutOfRange, row, column, n)
	}
	return nil
}

func (b *Board) locate(id int) (models.Column, int, bool) {
	for c, col := range b.data.Columns {
		for r, t := range col {
			if t.ID == id {
				return models.Column(c), r, true
			}
		}
	}
	return 0, 0, false
}

// removeAt returns col without the element at row, and that element. The
// result never aliases col so snapshots taken earlier stay intact.
func removeAt(col []models.Task, row int) ([]models.Task, models.Task) {
	removed := col[row]
	out := make([]models.Task, 0, len(col)-1)
	out = append(out, col[:row]...)
	out = append(out, col[row+1:]...)
	return out, removed
}

// normalizeIDs gives every task a unique positive ID and raises NextID
// above the largest one. It reports whether anything changed.
func normalizeIDs(data *models.Board) bool {
	maxID := 0
	for _, col := range data.Columns {
		for _, t := range col {
			maxID = max(maxID, t.ID)
		}
	}
	next := max(data.NextID, maxID+1)

	changed := false
	seen := make(map[int]bool)
	for c := range data.Columns {
		if data.Columns[c] == nil {
			data.Columns[c] = []models.Task{}
		}
		for r := range data.Columns[c] {
			t := &data.Columns[c][r]
			if t.ID <= 0 || seen[t.ID] {
				t.ID = next
				next++
				changed = true
			}
			seen[t.ID] = true
		}
	}
	if data.NextID != next {
		data.NextID = next
		changed = true
	}
	return changed
}
