package output

import (
	"fmt"
	"strings"

	"mtodo/internal/application/dto"
)

// TodoHeaders are the columns of the todo table
var TodoHeaders = []string{"ID", "", "TITLE", "DUE", "PRIORITY", "CATEGORY"}

// TodoRow renders a todo as a table row
func TodoRow(t dto.TodoDTO) []string {
	return []string{t.ShortID, StatusMark(t), t.Title, DueText(t), t.Priority, t.Category}
}

// StatusMark is a one-cell marker for completion and urgency
func StatusMark(t dto.TodoDTO) string {
	switch {
	case t.IsCompleted:
		return "✓"
	case t.IsOverdue:
		return "!"
	case t.IsDueSoon:
		return "•"
	default:
		return " "
	}
}

// DueText is the display due date with its urgency suffix
func DueText(t dto.TodoDTO) string {
	switch {
	case t.IsOverdue:
		return t.DueDateText + " (overdue)"
	case t.IsDueSoon:
		return t.DueDateText + " (soon)"
	default:
		return t.DueDateText
	}
}

// TodoMarkdown describes a todo as a markdown document
func TodoMarkdown(t dto.TodoDTO) string {
	var b strings.Builder
	title := t.Title
	if t.IsCompleted {
		title = "~~" + title + "~~"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	status := "open"
	if t.IsCompleted {
		status = "completed"
	}
	fmt.Fprintf(&b, "- **ID:** `%s`\n", t.ID)
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	fmt.Fprintf(&b, "- **Due:** %s\n", DueText(t))
	fmt.Fprintf(&b, "- **Priority:** %s\n", t.Priority)
	if t.Category != "" {
		fmt.Fprintf(&b, "- **Category:** %s\n", t.Category)
	}
	fmt.Fprintf(&b, "- **Created:** %s\n", t.CreatedDate.Local().Format("Jan 02, 2006 15:04"))

	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	return b.String()
}
