package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"mtodo/internal/domain/valueobject"
)

const (
	// MaxTitleLength is the maximum number of characters in a title
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum number of characters in a description
	MaxDescriptionLength = 500
)

// Task represents a single to-do item
type Task struct {
	id          valueobject.TaskID
	title       string
	description string
	category    string
	dueDate     valueobject.Date
	priority    valueobject.Priority
	completed   bool
	createdDate time.Time
}

// NewTask creates a new, not yet completed Task entity
func NewTask(
	id valueobject.TaskID,
	title string,
	description string,
	category string,
	dueDate valueobject.Date,
	priority valueobject.Priority,
	createdDate time.Time,
) (*Task, error) {
	if id.IsZero() {
		return nil, ErrInvalidTaskID
	}

	t := &Task{
		id:          id,
		createdDate: createdDate,
	}
	if err := t.UpdateTitle(title); err != nil {
		return nil, err
	}
	if err := t.UpdateDescription(description); err != nil {
		return nil, err
	}
	if err := t.UpdateDueDate(dueDate); err != nil {
		return nil, err
	}
	if err := t.UpdatePriority(priority); err != nil {
		return nil, err
	}
	t.UpdateCategory(category)

	return t, nil
}

// ReconstructTask rebuilds a Task from stored state. Title and description
// limits apply when a task is created or edited, so stored text is taken
// as is.
func ReconstructTask(
	id valueobject.TaskID,
	title string,
	description string,
	category string,
	dueDate valueobject.Date,
	priority valueobject.Priority,
	completed bool,
	createdDate time.Time,
) (*Task, error) {
	if id.IsZero() {
		return nil, ErrInvalidTaskID
	}
	if dueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	return &Task{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		dueDate:     dueDate,
		priority:    priority,
		completed:   completed,
		createdDate: createdDate,
	}, nil
}

// ID returns the task ID
func (t *Task) ID() valueobject.TaskID {
	return t.id
}

// Title returns the task title
func (t *Task) Title() string {
	return t.title
}

// Description returns the task description
func (t *Task) Description() string {
	return t.description
}

// Category returns the task category, empty when uncategorised
func (t *Task) Category() string {
	return t.category
}

// DueDate returns the task due date
func (t *Task) DueDate() valueobject.Date {
	return t.dueDate
}

// Priority returns the task priority
func (t *Task) Priority() valueobject.Priority {
	return t.priority
}

// IsCompleted reports whether the task is done
func (t *Task) IsCompleted() bool {
	return t.completed
}

// CreatedDate returns when the task was created
func (t *Task) CreatedDate() time.Time {
	return t.createdDate
}

// IsOverdue reports whether the task is open and its due date has passed
func (t *Task) IsOverdue(today valueobject.Date) bool {
	return !t.completed && t.dueDate.Before(today)
}

// IsDueSoon reports whether the task is open and due today or tomorrow
func (t *Task) IsDueSoon(today valueobject.Date) bool {
	return !t.completed && !t.dueDate.Before(today) && !t.dueDate.After(today.AddDays(1))
}

// UpdateTitle updates the task title
func (t *Task) UpdateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	t.title = title
	return nil
}

// UpdateDescription updates the task description
func (t *Task) UpdateDescription(description string) error {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	t.description = description
	return nil
}

// UpdateCategory updates the task category
func (t *Task) UpdateCategory(category string) {
	t.category = strings.TrimSpace(category)
}

// UpdateDueDate updates the task due date. Past dates are accepted here;
// whether they are allowed is decided by the caller's validation policy.
func (t *Task) UpdateDueDate(dueDate valueobject.Date) error {
	if dueDate.IsZero() {
		return ErrDueDateRequired
	}
	t.dueDate = dueDate
	return nil
}

// UpdatePriority updates the task priority
func (t *Task) UpdatePriority(priority valueobject.Priority) error {
	if !priority.IsValid() {
		return ErrInvalidPriority
	}
	t.priority = priority
	return nil
}

// ToggleCompleted flips the completion flag
func (t *Task) ToggleCompleted() {
	t.completed = !t.completed
}

// SetCompleted sets the completion flag
func (t *Task) SetCompleted(completed bool) {
	t.completed = completed
}
