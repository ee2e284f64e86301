package valueobject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"low", PriorityLow},
		{"Medium", PriorityMedium},
		{"HIGH", PriorityHigh},
		{" high ", PriorityHigh},
		{"", PriorityMedium},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePriority("urgent")
	assert.True(t, errors.Is(err, ErrInvalidPriority))
}

func TestPriorityOrdering(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Equal(t, "High", PriorityHigh.String())
	assert.False(t, Priority(7).IsValid())
}

func TestPriorityFromInt(t *testing.T) {
	p, err := PriorityFromInt(2)
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = PriorityFromInt(3)
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestPriorityText(t *testing.T) {
	b, err := PriorityLow.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Low", string(b))

	var p Priority
	require.NoError(t, p.UnmarshalText([]byte("high")))
	assert.Equal(t, PriorityHigh, p)
}
