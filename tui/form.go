package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
	"mtodo/tui/style"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldDue
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Category", "Due", "Priority"}

// form is the add/edit dialog. editing is nil when adding.
type form struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	urgent  bool
	editing *valueobject.TaskID
}

func newForm() *form {
	f := &form{}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].CharLimit = entity.MaxTitleLength
	f.inputs[fieldTitle].Placeholder = "What needs doing?"
	f.inputs[fieldDescription].CharLimit = entity.MaxDescriptionLength
	f.inputs[fieldCategory].Placeholder = "optional"
	f.inputs[fieldDue].Placeholder = valueobject.DateLayout
	f.inputs[fieldDue].CharLimit = len(valueobject.DateLayout)
	f.inputs[fieldPriority].Placeholder = "low, medium, high"
	f.inputs[fieldTitle].Focus()
	return f
}

// newAddForm starts with the defaults for a new todo: due tomorrow, medium
func newAddForm(today valueobject.Date) *form {
	f := newForm()
	f.inputs[fieldDue].SetValue(today.AddDays(1).String())
	f.inputs[fieldPriority].SetValue(valueobject.DefaultPriority.String())
	return f
}

func newEditForm(id valueobject.TaskID, todo dto.TodoDTO) *form {
	f := newForm()
	f.editing = &id
	f.inputs[fieldTitle].SetValue(todo.Title)
	f.inputs[fieldDescription].SetValue(todo.Description)
	f.inputs[fieldCategory].SetValue(todo.Category)
	f.inputs[fieldDue].SetValue(todo.DueDate)
	f.inputs[fieldPriority].SetValue(todo.Priority)
	return f
}

func (f *form) value(field int) string {
	return f.inputs[field].Value()
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) createRequest() dto.CreateTodoRequest {
	return dto.CreateTodoRequest{
		Title:       f.value(fieldTitle),
		Description: f.value(fieldDescription),
		Category:    f.value(fieldCategory),
		DueDate:     f.value(fieldDue),
		Priority:    f.value(fieldPriority),
		Urgent:      f.urgent,
	}
}

func (f *form) updateRequest() dto.UpdateTodoRequest {
	title := f.value(fieldTitle)
	description := f.value(fieldDescription)
	category := f.value(fieldCategory)
	due := f.value(fieldDue)
	priority := f.value(fieldPriority)
	return dto.UpdateTodoRequest{
		Title:       &title,
		Description: &description,
		Category:    &category,
		DueDate:     &due,
		Priority:    &priority,
		Urgent:      f.urgent,
	}
}

func (f *form) view(width int) string {
	heading := "New todo"
	if f.editing != nil {
		heading = "Edit todo"
	}

	rows := []string{style.TitleStyle.Render(heading), ""}
	for i, in := range f.inputs {
		in.Width = width - 18
		rows = append(rows, style.LabelStyle.Render(fieldLabels[i])+in.View())
	}

	urgent := "[ ]"
	if f.urgent {
		urgent = "[x]"
	}
	rows = append(rows, style.LabelStyle.Render("Urgent")+urgent+" (ctrl+u)")
	rows = append(rows, "", style.HelpStyle.UnsetPadding().Render(strings.Join([]string{
		"tab/shift+tab: move", "enter: save", "esc: cancel",
	}, "  •  ")))

	return style.FormStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
