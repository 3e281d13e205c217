package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	dropTargetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("205"))

	ruleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("62")).
				Bold(true)

	liftedCardStyle = cardStyle.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205"))

	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m boardModel) View() string {
	board := m.ctrl.Board().Snapshot()
	title := m.renderTitle(board)

	if m.help.ShowAll {
		return title + "\n\n" + m.help.View(m.keys) + "\n\n" + helpStyle.Render("press any key to return")
	}

	if m.mode != modeBoard {
		hint := "tab: next field · enter: save · esc: cancel"
		if m.mode == modeEdit {
			hint += " · ctrl+d: delete task"
		}
		return title + "\n\n" + m.form.View(m.layout.width, hint)
	}

	drag := m.ctrl.Drag()
	blocks := make([]string, 0, 2*models.ColumnCount-1)
	for _, c := range models.AllColumns() {
		if c > 0 {
			blocks = append(blocks, strings.Repeat(" ", columnGap))
		}
		blocks = append(blocks, m.renderColumn(c, board.Column(c), drag))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	return title + "\n\n" + body + "\n\n" + m.renderStatus(drag) + "\n" + m.help.View(m.keys)
}

func (m boardModel) renderTitle(board models.Board) string {
	parts := make([]string, 0, models.ColumnCount)
	for _, c := range models.AllColumns() {
		parts = append(parts, fmt.Sprintf("%s %d", c, len(board.Column(c))))
	}
	line := titleStyle.Render("Task Board") + "  " + helpStyle.Render(strings.Join(parts, " · "))
	return lipgloss.NewStyle().MaxWidth(m.layout.width).Render(line)
}

func (m boardModel) renderColumn(c models.Column, tasks []models.Task, drag core.DragState) string {
	w := m.layout.colWidth

	name := fmt.Sprintf(" %s (%d)", strings.ToUpper(c.String()), len(tasks))
	off := m.offsets[c]
	end := min(len(tasks), off+m.layout.visibleCards())
	if off > 0 {
		name += " ↑"
	}
	if end < len(tasks) {
		name += " ↓"
	}
	style := headerStyle
	if drag.Active() && drag.HasTarget && drag.Target == c {
		style = dropTargetStyle
	}
	header := style.Width(w).Render(truncate(name, w))
	rule := ruleStyle.Render(strings.Repeat("─", w))

	lines := []string{header, rule}
	for row := off; row < end; row++ {
		t := tasks[row]
		focused := c == m.focusCol && row == m.focusRow
		lifted := drag.Active() && drag.TaskID == t.ID
		lines = append(lines, renderCard(t, focused, lifted, w))
	}

	return lipgloss.NewStyle().
		Width(w).
		Height(m.layout.columnHeight()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderCard draws a task in exactly cardLines lines and width cells.
func renderCard(t models.Task, focused, lifted bool, width int) string {
	style := cardStyle
	switch {
	case lifted:
		style = liftedCardStyle
	case focused:
		style = focusedCardStyle
	}

	inner := width - 4
	label := truncate(singleLine(t.Label), inner)
	meta := metaStyle.Render(truncate(singleLine(t.Date+" · "+t.Effort), inner))
	return style.Width(width - 2).Render(label + "\n" + meta)
}

func (m boardModel) renderStatus(drag core.DragState) string {
	var line string
	switch {
	case m.status != "" && m.warning:
		line = warningStyle.Render("! " + m.status)
	case m.status != "":
		line = infoStyle.Render(m.status)
	case drag.Active():
		target := "no column"
		if drag.HasTarget {
			target = drag.Target.String()
		}
		line = infoStyle.Render(fmt.Sprintf("moving #%d to %s · space/enter or release to drop · esc cancels", drag.TaskID, target))
	case len(m.alerts) > 0:
		a := m.alerts[0]
		line = styleForSeverity(string(a.Severity)).Render(fmt.Sprintf("[%s] %s", strings.ToUpper(string(a.Severity)), a.Message))
		if more := len(m.alerts) - 1; more > 0 {
			line += helpStyle.Render(fmt.Sprintf(" (+%d more, see tb alerts)", more))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.layout.width).Render(line)
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
