package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority is returned when a priority string cannot be parsed
var ErrInvalidPriority = errors.New("invalid priority value")

// Priority represents task urgency
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// DefaultPriority is used when no priority is given
const DefaultPriority = PriorityMedium

// Priorities lists all priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// String returns the string representation of the priority
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// IsValid checks if the priority is one of the known levels
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Rank returns the sort weight of the priority, higher is more urgent
func (p Priority) Rank() int {
	return int(p)
}

// ParsePriority converts a string to a Priority, case-insensitively.
// An empty string yields the default priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPriority, nil
	case "low":
		return PriorityLow, nil
	case "medium", "med":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityLow, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// PriorityFromInt converts a numeric level (0 Low, 1 Medium, 2 High)
func PriorityFromInt(n int) (Priority, error) {
	p := Priority(n)
	if !p.IsValid() {
		return PriorityLow, fmt.Errorf("%w: %d", ErrInvalidPriority, n)
	}
	return p, nil
}

// MarshalText implements encoding.TextMarshaler
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
