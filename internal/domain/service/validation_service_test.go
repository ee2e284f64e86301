package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

func TestValidateDraftOK(t *testing.T) {
	draft := TaskDraft{Title: "Pay rent", DueDate: today, Priority: valueobject.PriorityMedium}
	assert.NoError(t, NewValidationService().ValidateDraft(draft, ModeCreate, today))
}

func TestValidateDraftCollectsAll(t *testing.T) {
	draft := TaskDraft{Title: "  ", Description: strings.Repeat("x", 501)}
	err := NewValidationService().ValidateDraft(draft, ModeCreate, today)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("dueDate"))
	assert.True(t, verr.Has("description"))
	assert.ErrorIs(t, err, entity.ErrEmptyTaskTitle)
	assert.ErrorIs(t, err, entity.ErrDueDateRequired)
	assert.Equal(t, "title is required, due date is required, description must be 500 characters or less", err.Error())
}

func TestValidateDraftPastDueDependsOnMode(t *testing.T) {
	draft := TaskDraft{Title: "Old", DueDate: today.AddDays(-3)}
	svc := NewValidationService()

	err := svc.ValidateDraft(draft, ModeCreate, today)
	assert.ErrorIs(t, err, entity.ErrDueDateInPast)
	assert.NoError(t, svc.ValidateDraft(draft, ModeEdit, today))
}

func TestValidateDraftTitleTooLong(t *testing.T) {
	draft := TaskDraft{Title: strings.Repeat("t", 101), DueDate: today}
	assert.ErrorIs(t, NewValidationService().ValidateDraft(draft, ModeCreate, today), entity.ErrTitleTooLong)
}

func TestEffectivePriority(t *testing.T) {
	assert.Equal(t, valueobject.PriorityHigh, TaskDraft{Priority: valueobject.PriorityLow, Urgent: true}.EffectivePriority())
	assert.Equal(t, valueobject.PriorityLow, TaskDraft{Priority: valueobject.PriorityLow}.EffectivePriority())
}
