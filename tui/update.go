package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mtodo/internal/application/session"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case reminderTickMsg:
		m.checkReminders()
		return m, doReminderTick(m.opts.ReminderInterval)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	switch m.mode {
	case modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case modeForm:
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveUp()

	case key.Matches(msg, keys.Down):
		m.moveDown()

	case key.Matches(msg, keys.Add):
		m.form = newAddForm(m.session.Today())
		m.mode = modeForm
		return m, m.form.inputs[fieldTitle].Focus()

	case key.Matches(msg, keys.Edit):
		task, ok := m.session.Selected()
		if !ok {
			return m, nil
		}
		todo, err := m.session.Get(task.ID())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.form = newEditForm(task.ID(), todo)
		m.mode = modeForm
		return m, m.form.inputs[fieldTitle].Focus()

	case key.Matches(msg, keys.Toggle):
		if id, ok := m.session.SelectedID(); ok {
			change, err := m.session.ToggleComplete(context.Background(), id)
			m.afterCommand(change, err, "Toggled")
		}

	case key.Matches(msg, keys.Delete):
		task, ok := m.session.Selected()
		if !ok {
			return m, nil
		}
		id, title := task.ID(), task.Title()
		m.askConfirm(fmt.Sprintf("Delete %q? (y/n)", title), func(m *Model) {
			change, err := m.session.DeleteTodo(context.Background(), id)
			m.afterCommand(change, err, "Deleted")
		})

	case key.Matches(msg, keys.ClearCompleted):
		if !m.session.CanClearCompleted() {
			m.setStatus("No completed todos")
			return m, nil
		}
		m.askConfirm(fmt.Sprintf("Delete %d completed todo(s)? (y/n)", m.snap.Stats.Completed), func(m *Model) {
			change, err := m.session.ClearCompleted(context.Background())
			m.afterCommand(change, err, fmt.Sprintf("Removed %d completed todo(s)", len(change.IDs)))
		})

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.session.Criteria().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, keys.Category):
		m.cycleCategory()

	case key.Matches(msg, keys.Priority):
		m.cyclePriority()

	case key.Matches(msg, keys.Backup):
		path, err := m.session.Backup(context.Background())
		switch {
		case err != nil:
			m.setError(err)
		case path == "":
			m.setStatus("Nothing to back up yet")
		default:
			m.setStatus("Backup written to " + path)
		}

	case key.Matches(msg, keys.Dismiss):
		if m.reminder != "" {
			m.reminder = ""
			return m, nil
		}
		m.session.SetSearch("")
		m.session.SetCategory("")
		m.session.SetPriorityFilter(nil)
		m.status = ""
		m.refresh()

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.session.SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, formKeys.Cancel):
		m.mode = modeList
		m.form = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, formKeys.Next):
		m.form.move(1)
		return m, nil

	case key.Matches(msg, formKeys.Prev):
		m.form.move(-1)
		return m, nil

	case key.Matches(msg, formKeys.Urgent):
		m.form.urgent = !m.form.urgent
		return m, nil

	case key.Matches(msg, formKeys.Submit):
		m.submitForm()
		return m, nil
	}

	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	m.confirm = nil
	m.mode = modeList
	switch msg.String() {
	case "y", "Y":
		pending.run(&m)
	default:
		m.setStatus("Cancelled")
	}
	return m, nil
}

// submitForm runs add or edit. Validation errors keep the form open.
func (m *Model) submitForm() {
	var (
		change session.Change
		err    error
		done   string
	)
	if m.form.editing != nil {
		change, err = m.session.EditTodo(context.Background(), *m.form.editing, m.form.updateRequest())
		done = "Updated"
	} else {
		change, err = m.session.AddTodo(context.Background(), m.form.createRequest())
		done = "Added"
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		m.setError(verr)
		return
	}

	m.mode = modeList
	m.form = nil
	if err == nil && len(change.IDs) == 1 {
		_ = m.session.Select(change.IDs[0])
	}
	m.afterCommand(change, err, done)
}

// afterCommand refreshes the view and reports the outcome
func (m *Model) afterCommand(change session.Change, err error, done string) {
	m.refresh()
	switch {
	case err != nil:
		m.setError(err)
	case change.Warning != nil:
		m.setError(fmt.Errorf("not saved, changes kept in memory: %w", change.Warning))
	case change.Applied:
		m.setStatus(done)
	}
}

func (m *Model) askConfirm(prompt string, run func(m *Model)) {
	m.confirm = &confirmation{prompt: prompt, run: run}
	m.mode = modeConfirm
}

func (m *Model) checkReminders() {
	report := m.session.EvaluateReminders()
	if report == nil {
		m.reminder = ""
		return
	}
	m.reminder = report.Message()
}

// cycleCategory steps through "All" and the categories in use
func (m *Model) cycleCategory() {
	categories := m.snap.Categories
	current := m.session.Criteria().Category
	if current == "" {
		current = service.AllCategories
	}
	next := 0
	for i, c := range categories {
		if c == current {
			next = (i + 1) % len(categories)
			break
		}
	}
	m.session.SetCategory(categories[next])
	m.refresh()
}

// cyclePriority steps through no filter, High, Medium and Low
func (m *Model) cyclePriority() {
	order := []*valueobject.Priority{nil}
	for i := len(valueobject.Priorities) - 1; i >= 0; i-- {
		p := valueobject.Priorities[i]
		order = append(order, &p)
	}

	current := m.session.Criteria().Priority
	next := 0
	for i, p := range order {
		if (p == nil && current == nil) || (p != nil && current != nil && *p == *current) {
			next = (i + 1) % len(order)
			break
		}
	}
	m.session.SetPriorityFilter(order[next])
	m.refresh()
}

// moveUp moves the cursor to the todo above
func (m *Model) moveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.syncSelection()
	}
}

// moveDown moves the cursor to the todo below
func (m *Model) moveDown() {
	if m.cursor < len(m.snap.Todos)-1 {
		m.cursor++
		m.syncSelection()
	}
}
