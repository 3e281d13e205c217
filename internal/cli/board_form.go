package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Form field indices.
const (
	fieldLabel = iota
	fieldDate
	fieldEffort
	fieldCount
)

var fieldPrompts = [fieldCount]string{
	fieldLabel:  "Label:  ",
	fieldDate:   "Date:   ",
	fieldEffort: "Effort: ",
}

// taskForm edits the three text fields of a task. It only holds text; the
// board is touched when the caller turns the form into an intent.
type taskForm struct {
	title  string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newTaskForm(title string, task models.Task) taskForm {
	f := taskForm{title: title}
	values := [fieldCount]string{task.Label, task.Date, task.Effort}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = fieldPrompts[i]
		in.CharLimit = 200
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldLabel].Focus()
	return f
}

// Update handles field navigation and forwards other keys to the focused
// input.
func (f taskForm) Update(msg tea.KeyMsg, keys formKeyMap) (taskForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil
	case key.Matches(msg, keys.Prev):
		f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *taskForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Task returns the field values. Surrounding whitespace is dropped.
func (f taskForm) Task() models.Task {
	return models.Task{
		Label:  strings.TrimSpace(f.inputs[fieldLabel].Value()),
		Date:   strings.TrimSpace(f.inputs[fieldDate].Value()),
		Effort: strings.TrimSpace(f.inputs[fieldEffort].Value()),
	}
}

func (f taskForm) View(width int, hint string) string {
	inner := width - 6
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(f.title))
	b.WriteString("\n")
	for i := range f.inputs {
		in := f.inputs[i]
		in.Width = inner - lipgloss.Width(in.Prompt) - 1
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(hint))

	return formStyle.Width(inner).Render(b.String())
}
