package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfDropsTimeOfDay(t *testing.T) {
	late := time.Date(2026, 2, 9, 23, 59, 0, 0, time.Local)
	assert.True(t, DateOf(late).Equal(NewDate(2026, 2, 9)))
}

func TestParseDate(t *testing.T) {
	tests := []string{
		"2026-02-09",
		"2026-02-09T00:00:00",
		"2026-02-09T15:30:00Z",
		"2026-02-09T08:00:00+02:00",
	}
	for _, in := range tests {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2026-02-09", d.String(), in)
	}

	_, err := ParseDate("09/02/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("  ")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, 2, 28)
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Equal(t, 0, d.Compare(NewDate(2026, 2, 28)))
}

func TestDateDisplay(t *testing.T) {
	assert.Equal(t, "Feb 09, 2026", NewDate(2026, 2, 9).Display())
}

func TestTaskIDPrefix(t *testing.T) {
	id := MustParseTaskID("5f0c7a8e-1111-4222-8333-444455556666")
	assert.True(t, id.HasPrefix("5F0C"))
	assert.False(t, id.HasPrefix("abcd"))
	assert.Equal(t, "5f0c7a8e", id.Short())

	_, err := ParseTaskID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidTaskID)
	_, err = ParseTaskID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrInvalidTaskID)
}
