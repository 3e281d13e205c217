package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

type boardMode int

const (
	modeBoard boardMode = iota
	modeCreate
	modeEdit
)

// mouseGesture tracks a left-button press until it is released.
type mouseGesture struct {
	active bool
	moved  bool
}

// boardModel is the interactive board. Every key or mouse message is turned
// into controller intents that are flushed once; View only reads.
type boardModel struct {
	ctrl     *core.Controller
	keys     boardKeyMap
	formKeys formKeyMap
	help     help.Model
	layout   boardLayout

	focusCol models.Column
	focusRow int
	offsets  [models.ColumnCount]int

	mode  boardMode
	form  taskForm
	mouse mouseGesture

	status  string
	warning bool
	alerts  []observability.Alert
}

// alertsLoadedMsg carries a fresh alert evaluation back to the model.
type alertsLoadedMsg struct {
	alerts []observability.Alert
	err    error
}

func newBoardModel(ctrl *core.Controller) boardModel {
	m := boardModel{
		ctrl:     ctrl,
		keys:     newBoardKeyMap(),
		formKeys: newFormKeyMap(),
		help:     help.New(),
		layout:   newBoardLayout(0, 0),
	}
	if LoadWarning != nil {
		m.setWarning(fmt.Sprintf("board file could not be read and was reset: %v", LoadWarning))
	}
	m.clampFocus()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return loadAlerts
}

func loadAlerts() tea.Msg {
	if AlertEngine == nil {
		return alertsLoadedMsg{}
	}
	alerts, err := AlertEngine.Evaluate()
	return alertsLoadedMsg{alerts: alerts, err: err}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = newBoardLayout(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.clampFocus()
		return m, nil

	case alertsLoadedMsg:
		if msg.err != nil {
			if Logger != nil {
				Logger.Warn("evaluating alerts", "err", msg.err) // Non-fatal: the board still works.
			}
			m.alerts = nil
			return m, nil
		}
		m.alerts = msg.alerts
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBoard {
			return m.updateForm(msg)
		}
		return m.updateBoard(msg)

	case tea.MouseMsg:
		if m.mode != modeBoard || m.help.ShowAll {
			return m, nil
		}
		return m.updateMouse(msg)
	}

	return m, nil
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll {
		m.help.ShowAll = false
		return m, nil
	}
	m.clearStatus()

	if drag := m.ctrl.Drag(); drag.Active() {
		return m.updateKeyboardDrag(msg, drag)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.Up):
		m.focusRow--
		m.clampFocus()
	case key.Matches(msg, m.keys.Down):
		m.focusRow++
		m.clampFocus()
	case key.Matches(msg, m.keys.Left):
		if m.focusCol > models.ColumnPlanned {
			m.focusCol--
		}
		m.clampFocus()
	case key.Matches(msg, m.keys.Right):
		if m.focusCol < models.ColumnDone {
			m.focusCol++
		}
		m.clampFocus()
	case key.Matches(msg, m.keys.New):
		m.mode = modeCreate
		m.form = newTaskForm("New task", m.ctrl.Board().NewTask())
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()
	case key.Matches(msg, m.keys.Remove):
		if _, ok := m.focusedTask(); ok {
			return m, m.apply(core.RemoveIntent{Column: m.focusCol, Row: m.focusRow})
		}
	case key.Matches(msg, m.keys.Grab):
		if _, ok := m.focusedTask(); ok {
			return m, m.apply(
				core.BeginDragIntent{Column: m.focusCol, Row: m.focusRow},
				core.HoverIntent{Column: m.focusCol},
			)
		}
	case key.Matches(msg, m.keys.ShiftLeft):
		return m, m.shift(-1)
	case key.Matches(msg, m.keys.ShiftRight):
		return m, m.shift(1)
	}
	return m, nil
}

// updateKeyboardDrag handles keys while a task is picked up: left and right
// choose the drop column, space or enter drops, esc cancels.
func (m boardModel) updateKeyboardDrag(msg tea.KeyMsg, drag core.DragState) (tea.Model, tea.Cmd) {
	target := drag.SourceColumn
	if drag.HasTarget {
		target = drag.Target
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.apply(core.EndDragIntent{Released: false})
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		if target > models.ColumnPlanned {
			m.apply(core.HoverIntent{Column: target - 1})
		}
	case key.Matches(msg, m.keys.Right):
		if target < models.ColumnDone {
			m.apply(core.HoverIntent{Column: target + 1})
		}
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Edit):
		cmd := m.apply(core.EndDragIntent{Released: true})
		m.focusTask(drag.TaskID)
		return m, cmd
	case key.Matches(msg, m.keys.Cancel):
		m.apply(core.EndDragIntent{Released: false})
	case key.Matches(msg, m.keys.Remove):
		if _, ok := m.focusedTask(); ok {
			return m, m.apply(core.RemoveIntent{Column: m.focusCol, Row: m.focusRow})
		}
	}
	return m, nil
}

// shift moves the focused task one column left or right as a complete
// drag gesture.
func (m *boardModel) shift(delta int) tea.Cmd {
	task, ok := m.focusedTask()
	if !ok {
		return nil
	}
	dest := m.focusCol + models.Column(delta)
	if !dest.Valid() {
		return nil
	}
	cmd := m.apply(
		core.BeginDragIntent{Column: m.focusCol, Row: m.focusRow},
		core.HoverIntent{Column: dest},
		core.EndDragIntent{Released: true},
	)
	m.focusTask(task.ID)
	return cmd
}

func (m boardModel) openEdit() (tea.Model, tea.Cmd) {
	if _, ok := m.focusedTask(); !ok {
		return m, nil
	}
	m.apply(core.SelectIntent{Column: m.focusCol, Row: m.focusRow})
	sel := m.ctrl.Selection()
	if !sel.Active() {
		return m, nil
	}
	m.mode = modeEdit
	m.form = newTaskForm(fmt.Sprintf("Edit task #%d", sel.TaskID), sel.Buffer)
	return m, textinput.Blink
}

func (m boardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		if m.mode == modeEdit {
			m.ctrl.ClearSelection()
		}
		m.mode = modeBoard
		return m, nil
	case key.Matches(msg, m.formKeys.Submit):
		return m.submitForm()
	case m.mode == modeEdit && key.Matches(msg, m.formKeys.Delete):
		m.mode = modeBoard
		return m, m.apply(core.DeleteViaEditIntent{})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg, m.formKeys)
	return m, cmd
}

func (m boardModel) submitForm() (tea.Model, tea.Cmd) {
	task := m.form.Task()
	if task.Label == "" {
		// Empty labels are ignored and the form stays open.
		return m, nil
	}

	var (
		cmd tea.Cmd
		ok  bool
	)
	if m.mode == modeCreate {
		ok, cmd = m.applyChecked(core.CreateIntent{Task: task})
		m.focusCol = models.ColumnPlanned
		m.focusRow = m.ctrl.Board().Counts()[models.ColumnPlanned] - 1
		m.clampFocus()
		if ok {
			m.setStatus(fmt.Sprintf("task created: %s", task.Label))
		}
	} else {
		id := m.ctrl.Selection().TaskID
		ok, cmd = m.applyChecked(core.BufferIntent{Task: task}, core.CommitEditIntent{})
		m.focusTask(id)
		if ok {
			m.setStatus(fmt.Sprintf("task edited: %s", task.Label))
		}
	}
	m.mode = modeBoard
	return m, cmd
}

// updateMouse maps a press on a card to BeginDrag, motion to Hover or
// Leave, and release to EndDrag. A press released without motion only
// focuses the card.
func (m boardModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row, ok := m.layout.cardAt(msg.X, msg.Y, m.offsets, m.ctrl.Board().Counts())
		if !ok {
			return m, nil
		}
		m.clearStatus()
		m.focusCol, m.focusRow = col, row
		m.mouse = mouseGesture{active: true}
		return m, m.apply(core.BeginDragIntent{Column: col, Row: row}, core.HoverIntent{Column: col})

	case tea.MouseActionMotion:
		if !m.mouse.active {
			return m, nil
		}
		m.mouse.moved = true
		m.apply(m.hoverAt(msg.X, msg.Y))
		return m, nil

	case tea.MouseActionRelease:
		if !m.mouse.active {
			return m, nil
		}
		gesture := m.mouse
		m.mouse = mouseGesture{}
		if !gesture.moved {
			m.apply(core.EndDragIntent{Released: false})
			return m, nil
		}
		id := m.ctrl.Drag().TaskID
		cmd := m.apply(m.hoverAt(msg.X, msg.Y), core.EndDragIntent{Released: true})
		m.focusTask(id)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) hoverAt(x, y int) core.Intent {
	if col, ok := m.layout.columnAt(x, y); ok {
		return core.HoverIntent{Column: col}
	}
	return core.LeaveIntent{}
}

// apply queues intents, flushes them once and reports their errors. The
// returned command refreshes the alerts.
func (m *boardModel) apply(intents ...core.Intent) tea.Cmd {
	_, cmd := m.applyChecked(intents...)
	return cmd
}

// applyChecked is apply that also reports whether every intent succeeded.
func (m *boardModel) applyChecked(intents ...core.Intent) (bool, tea.Cmd) {
	m.ctrl.Enqueue(intents...)
	errs := m.ctrl.Flush()
	m.report(errs)
	m.clampFocus()
	return len(errs) == 0, loadAlerts
}

func (m *boardModel) report(errs []error) {
	for _, err := range errs {
		switch {
		case errors.Is(err, core.ErrValidationRejected),
			errors.Is(err, core.ErrOutOfRange),
			errors.Is(err, core.ErrDragInProgress),
			errors.Is(err, core.ErrNoSelection):
			// Silent in the UI. Index errors are logged by the controller.
		case errors.Is(err, core.ErrPersistence):
			m.setWarning(fmt.Sprintf("changes not saved: %v", err))
		case errors.Is(err, core.ErrStaleReference):
			m.setStatus("that task no longer exists")
		default:
			m.setWarning(err.Error())
		}
	}
}

func (m *boardModel) setStatus(s string) {
	m.status = s
	m.warning = false
}

func (m *boardModel) setWarning(s string) {
	m.status = s
	m.warning = true
}

func (m *boardModel) clearStatus() {
	m.status = ""
	m.warning = false
}

func (m *boardModel) focusedTask() (models.Task, bool) {
	task, err := m.ctrl.Board().Task(m.focusCol, m.focusRow)
	return task, err == nil
}

// focusTask moves the focus onto the task with the given ID, if it exists.
func (m *boardModel) focusTask(id int) {
	if col, row, ok := m.ctrl.Board().Locate(id); ok {
		m.focusCol, m.focusRow = col, row
	}
	m.clampFocus()
}

// clampFocus keeps the focus on an existing row and every column scrolled
// to a valid offset with the focused card visible.
func (m *boardModel) clampFocus() {
	counts := m.ctrl.Board().Counts()
	if n := counts[m.focusCol]; m.focusRow >= n {
		m.focusRow = n - 1
	}
	if m.focusRow < 0 {
		m.focusRow = 0
	}
	for c := range m.offsets {
		row := m.offsets[c]
		if models.Column(c) == m.focusCol {
			row = m.focusRow
		}
		m.offsets[c] = m.layout.scrollTo(m.offsets[c], row, counts[c])
	}
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open the interactive task board.

Move the focus with the arrow keys, press n to add a task, enter to edit,
d to remove, and space to pick a task up and drop it in another column.
Tasks can also be dragged with the mouse. Press ? for all keys.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard()
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard() error {
	if Controller == nil {
		return fmt.Errorf("board not initialized")
	}

	if Logger != nil && LogFile != "" {
		f, err := observability.OpenLogFile(LogFile)
		if err != nil {
			Logger.Warn("diagnostics stay on stderr", "err", err)
		} else {
			Logger.SetOutput(f)
			defer func() {
				Logger.SetOutput(os.Stderr)
				_ = f.Close()
			}()
		}
		Logger.Info("board opened", "path", BoardPath)
	}

	p := tea.NewProgram(newBoardModel(Controller), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
