package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/service"
	"mtodo/tui/style"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if m.reminder != "" {
		sections = append(sections, style.ReminderStyle.Width(m.width-2).Render(m.reminder))
	}

	switch m.mode {
	case modeForm:
		sections = append(sections, m.form.view(min(m.width-2, 72)))
	default:
		sections = append(sections, m.renderList(m.listHeight(sections)))
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := style.TitleStyle.Render("mtodo")

	var filters []string
	c := m.session.Criteria()
	if c.Search != "" {
		filters = append(filters, fmt.Sprintf("search %q", c.Search))
	}
	if c.Category != "" && c.Category != service.AllCategories {
		filters = append(filters, "category "+style.CategoryStyle.Render(c.Category))
	}
	if c.Priority != nil {
		filters = append(filters, "priority "+c.Priority.String())
	}
	if len(filters) == 0 {
		return title
	}
	return title + style.StatsStyle.Render(strings.Join(filters, "  "))
}

func (m Model) listHeight(above []string) int {
	used := 0
	for _, s := range above {
		used += lipgloss.Height(s)
	}
	// footer: search/status line, stats line, help
	used += 3 + lipgloss.Height(m.help.View(keys))
	h := m.height - used
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) renderList(height int) string {
	if len(m.snap.Todos) == 0 {
		msg := "No todos yet. Press " + keys.Add.Help().Key + " to add one."
		if m.snap.Stats.Total > 0 {
			msg = "No todos match the current filters."
		}
		return style.TaskStyle.Foreground(lipgloss.Color("240")).Render(msg)
	}

	m.updateScroll(height)
	end := m.scroll + height
	if end > len(m.snap.Todos) {
		end = len(m.snap.Todos)
	}

	rows := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		rows = append(rows, m.renderTodo(m.snap.Todos[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTodo(t dto.TodoDTO, selected bool) string {
	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}
	category := ""
	if t.Category != "" {
		category = " #" + t.Category
	}

	switch {
	case selected:
		return style.SelectedTaskStyle.Width(m.width).Render(
			fmt.Sprintf("%s %-6s %s  %s%s", check, t.Priority, t.DueDateText, t.Title, category))
	case t.IsCompleted:
		return style.CompletedTaskStyle.Render(
			fmt.Sprintf("%s %-6s %s  %s%s", check, t.Priority, t.DueDateText, t.Title, category))
	}

	priority := lipgloss.NewStyle().Foreground(style.PriorityColor(t.Priority)).Render(fmt.Sprintf("%-6s", t.Priority))
	due := lipgloss.NewStyle().Foreground(style.DueColor(t.IsOverdue, t.IsDueSoon)).Render(t.DueDateText)
	if category != "" {
		category = " " + style.CategoryStyle.Render("#"+t.Category)
	}
	return style.TaskStyle.Render(fmt.Sprintf("%s %s %s  %s%s", check, priority, due, t.Title, category))
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.mode == modeSearch:
		status = m.search.View()
	case m.mode == modeConfirm && m.confirm != nil:
		status = style.ErrorStyle.Render(m.confirm.prompt)
	case m.statusError:
		status = style.ErrorStyle.Render(m.status)
	default:
		status = style.StatsStyle.Render(m.status)
	}

	s := m.snap.Stats
	stats := style.StatsStyle.Render(fmt.Sprintf("Total: %d  Completed: %d  Pending: %d  Overdue: %d",
		s.Total, s.Completed, s.Pending, s.Overdue))

	return lipgloss.JoinVertical(lipgloss.Left, status, stats, style.HelpStyle.Render(m.help.View(keys)))
}
