package dto

import (
	"time"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
)

// TodoDTO represents a todo data transfer object
type TodoDTO struct {
	ID          string    `json:"id" yaml:"id"`
	ShortID     string    `json:"short_id" yaml:"short_id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	DueDate     string    `json:"due_date" yaml:"due_date"`
	DueDateText string    `json:"due_date_text" yaml:"due_date_text"`
	Category    string    `json:"category" yaml:"category"`
	Priority    string    `json:"priority" yaml:"priority"`
	IsCompleted bool      `json:"is_completed" yaml:"is_completed"`
	CreatedDate time.Time `json:"created_date" yaml:"created_date"`
	IsOverdue   bool      `json:"is_overdue" yaml:"is_overdue"`
	IsDueSoon   bool      `json:"is_due_soon" yaml:"is_due_soon"`
}

// TodoToDTO converts a task to a DTO, evaluating the date predicates for today
func TodoToDTO(task *entity.Task, today valueobject.Date, dateLayout string) TodoDTO {
	if dateLayout == "" {
		dateLayout = valueobject.DisplayLayout
	}
	return TodoDTO{
		ID:          task.ID().String(),
		ShortID:     task.ID().Short(),
		Title:       task.Title(),
		Description: task.Description(),
		DueDate:     task.DueDate().String(),
		DueDateText: task.DueDate().Format(dateLayout),
		Category:    task.Category(),
		Priority:    task.Priority().String(),
		IsCompleted: task.IsCompleted(),
		CreatedDate: task.CreatedDate(),
		IsOverdue:   task.IsOverdue(today),
		IsDueSoon:   task.IsDueSoon(today),
	}
}

// TodosToDTOs converts tasks in order
func TodosToDTOs(tasks []*entity.Task, today valueobject.Date, dateLayout string) []TodoDTO {
	out := make([]TodoDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TodoToDTO(t, today, dateLayout))
	}
	return out
}

// CreateTodoRequest represents a request to create a todo. Empty DueDate
// means tomorrow, empty Priority means Medium.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Urgent      bool   `json:"urgent,omitempty"`
}

// UpdateTodoRequest represents a partial update of a todo
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Urgent      bool    `json:"urgent,omitempty"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateTodoRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil &&
		r.DueDate == nil && r.Priority == nil && !r.Urgent
}

// StatsDTO summarises the collection
type StatsDTO struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
	Overdue   int `json:"overdue" yaml:"overdue"`
}

// StatsToDTO converts service stats
func StatsToDTO(s service.Stats) StatsDTO {
	return StatsDTO{Total: s.Total, Completed: s.Completed, Pending: s.Pending, Overdue: s.Overdue}
}

// ReminderGroupDTO is one section of a reminder
type ReminderGroupDTO struct {
	Count   int      `json:"count" yaml:"count"`
	Entries []string `json:"entries" yaml:"entries"`
	More    int      `json:"more" yaml:"more"`
}

// ReminderReportDTO represents a reminder ready for display
type ReminderReportDTO struct {
	Overdue ReminderGroupDTO `json:"overdue" yaml:"overdue"`
	DueSoon ReminderGroupDTO `json:"due_soon" yaml:"due_soon"`
	Message string           `json:"message" yaml:"message"`
}

// ReminderReportToDTO converts a report, returning nil for no report
func ReminderReportToDTO(r *service.ReminderReport) *ReminderReportDTO {
	if r == nil {
		return nil
	}
	group := func(g service.ReminderGroup) ReminderGroupDTO {
		entries := make([]string, len(g.Entries))
		copy(entries, g.Entries)
		return ReminderGroupDTO{Count: g.Count, Entries: entries, More: g.More}
	}
	return &ReminderReportDTO{
		Overdue: group(r.Overdue),
		DueSoon: group(r.DueSoon),
		Message: r.Message(),
	}
}
