package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/valueobject"
)

var created = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func newTestTask(t *testing.T, title string, due valueobject.Date) *Task {
	t.Helper()
	task, err := NewTask(valueobject.NewTaskID(), title, "", "", due, valueobject.PriorityMedium, created)
	require.NoError(t, err)
	return task
}

func TestNewTaskValidates(t *testing.T) {
	due := valueobject.NewDate(2026, 2, 10)
	id := valueobject.NewTaskID()

	_, err := NewTask(valueobject.TaskID{}, "x", "", "", due, valueobject.PriorityLow, created)
	assert.ErrorIs(t, err, ErrInvalidTaskID)

	_, err = NewTask(id, "   ", "", "", due, valueobject.PriorityLow, created)
	assert.ErrorIs(t, err, ErrEmptyTaskTitle)

	_, err = NewTask(id, strings.Repeat("a", MaxTitleLength+1), "", "", due, valueobject.PriorityLow, created)
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = NewTask(id, "ok", strings.Repeat("d", MaxDescriptionLength+1), "", due, valueobject.PriorityLow, created)
	assert.ErrorIs(t, err, ErrDescriptionTooLong)

	_, err = NewTask(id, "ok", "", "", valueobject.Date{}, valueobject.PriorityLow, created)
	assert.ErrorIs(t, err, ErrDueDateRequired)

	_, err = NewTask(id, "ok", "", "", due, valueobject.Priority(9), created)
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewTaskTrimsAndDefaults(t *testing.T) {
	task, err := NewTask(valueobject.NewTaskID(), "  Buy milk ", " 2 litres ", " Home ",
		valueobject.NewDate(2026, 2, 10), valueobject.PriorityHigh, created)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title())
	assert.Equal(t, "2 litres", task.Description())
	assert.Equal(t, "Home", task.Category())
	assert.False(t, task.IsCompleted())
	assert.Equal(t, created, task.CreatedDate())
}

func TestReconstructTaskKeepsStoredText(t *testing.T) {
	due := valueobject.NewDate(2026, 2, 10)
	title := strings.Repeat("a", MaxTitleLength+1)
	description := strings.Repeat("d", MaxDescriptionLength+1)

	task, err := ReconstructTask(valueobject.NewTaskID(), title, description, "Work", due,
		valueobject.PriorityLow, true, created)
	require.NoError(t, err)
	assert.Equal(t, title, task.Title())
	assert.Equal(t, description, task.Description())
	assert.True(t, task.IsCompleted())

	// edits are still limited
	assert.ErrorIs(t, task.UpdateTitle(title), ErrTitleTooLong)

	_, err = ReconstructTask(valueobject.NewTaskID(), "ok", "", "", valueobject.Date{}, valueobject.PriorityLow, false, created)
	assert.ErrorIs(t, err, ErrDueDateRequired)

	_, err = ReconstructTask(valueobject.NewTaskID(), "ok", "", "", due, valueobject.Priority(9), false, created)
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTitleLengthCountsCharacters(t *testing.T) {
	title := strings.Repeat("é", MaxTitleLength)
	task := newTestTask(t, title, valueobject.NewDate(2026, 2, 10))
	assert.Equal(t, title, task.Title())
}

func TestOverdueAndDueSoon(t *testing.T) {
	today := valueobject.NewDate(2026, 2, 9)

	tests := []struct {
		name      string
		due       valueobject.Date
		completed bool
		overdue   bool
		dueSoon   bool
	}{
		{"yesterday", today.AddDays(-1), false, true, false},
		{"today", today, false, false, true},
		{"tomorrow", today.AddDays(1), false, false, true},
		{"in two days", today.AddDays(2), false, false, false},
		{"completed yesterday", today.AddDays(-1), true, false, false},
		{"completed today", today, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTestTask(t, "task", tt.due)
			task.SetCompleted(tt.completed)
			assert.Equal(t, tt.overdue, task.IsOverdue(today))
			assert.Equal(t, tt.dueSoon, task.IsDueSoon(today))
		})
	}
}

func TestToggleCompleted(t *testing.T) {
	task := newTestTask(t, "task", valueobject.NewDate(2026, 2, 10))
	task.ToggleCompleted()
	assert.True(t, task.IsCompleted())
	task.ToggleCompleted()
	assert.False(t, task.IsCompleted())
}

func TestUpdateDueDateAcceptsPast(t *testing.T) {
	task := newTestTask(t, "task", valueobject.NewDate(2026, 2, 10))
	require.NoError(t, task.UpdateDueDate(valueobject.NewDate(2020, 1, 1)))
	assert.Equal(t, "2020-01-01", task.DueDate().String())
}
