package entity

import (
	"errors"

	"mtodo/internal/domain/valueobject"
)

var (
	// Task errors
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAlreadyExists  = errors.New("task already exists")
	ErrInvalidTaskID      = valueobject.ErrInvalidTaskID
	ErrEmptyTaskTitle     = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be 100 characters or less")
	ErrDescriptionTooLong = errors.New("description must be 500 characters or less")

	// Validation errors
	ErrInvalidPriority = valueobject.ErrInvalidPriority
	ErrDueDateRequired = errors.New("due date is required")
	ErrDueDateInPast   = errors.New("due date cannot be in the past")
)
