package service

import (
	"strings"
	"unicode/utf8"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// ValidationMode selects the rule set applied to a task draft
type ValidationMode int

const (
	// ModeCreate rejects due dates before today
	ModeCreate ValidationMode = iota
	// ModeEdit accepts past due dates so existing overdue tasks stay editable
	ModeEdit
)

// TaskDraft holds user-entered task fields before they become a Task
type TaskDraft struct {
	Title       string
	Description string
	Category    string
	DueDate     valueobject.Date
	Priority    valueobject.Priority
	Urgent      bool
}

// EffectivePriority returns High for urgent drafts, the chosen priority otherwise
func (d TaskDraft) EffectivePriority() valueobject.Priority {
	if d.Urgent {
		return valueobject.PriorityHigh
	}
	return d.Priority
}

// FieldError is a single rule violation
type FieldError struct {
	Field string
	Err   error
}

// Error implements error
func (e FieldError) Error() string {
	return e.Err.Error()
}

// ValidationError collects every rule a draft violates
type ValidationError struct {
	Fields []FieldError
}

// Error joins the individual messages with ", "
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, ", ")
}

// Unwrap exposes the underlying sentinel errors to errors.Is
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f.Err
	}
	return errs
}

// Has reports whether a field has a violation
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ValidationService checks task drafts against the input rules
type ValidationService struct{}

// NewValidationService creates a new ValidationService
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateDraft returns a *ValidationError listing every violation, or nil
func (s *ValidationService) ValidateDraft(draft TaskDraft, mode ValidationMode, today valueobject.Date) error {
	var fields []FieldError
	add := func(field string, err error) {
		fields = append(fields, FieldError{Field: field, Err: err})
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		add("title", entity.ErrEmptyTaskTitle)
	} else if utf8.RuneCountInString(title) > entity.MaxTitleLength {
		add("title", entity.ErrTitleTooLong)
	}

	if draft.DueDate.IsZero() {
		add("dueDate", entity.ErrDueDateRequired)
	} else if mode == ModeCreate && draft.DueDate.Before(today) {
		add("dueDate", entity.ErrDueDateInPast)
	}

	if utf8.RuneCountInString(strings.TrimSpace(draft.Description)) > entity.MaxDescriptionLength {
		add("description", entity.ErrDescriptionTooLong)
	}

	if !draft.Priority.IsValid() {
		add("priority", entity.ErrInvalidPriority)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
