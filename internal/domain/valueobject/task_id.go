package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidTaskID is returned for malformed task identifiers
var ErrInvalidTaskID = errors.New("invalid task ID format")

// TaskID uniquely identifies a task for its whole lifetime
type TaskID struct {
	value uuid.UUID
}

// NewTaskID generates a fresh random task ID
func NewTaskID() TaskID {
	return TaskID{value: uuid.New()}
}

// ParseTaskID parses the canonical string form of a task ID
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return TaskID{}, fmt.Errorf("%w: %q", ErrInvalidTaskID, s)
	}
	if id == uuid.Nil {
		return TaskID{}, fmt.Errorf("%w: nil id", ErrInvalidTaskID)
	}
	return TaskID{value: id}, nil
}

// MustParseTaskID is like ParseTaskID but panics on error
func MustParseTaskID(s string) TaskID {
	id, err := ParseTaskID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical string form
func (id TaskID) String() string {
	return id.value.String()
}

// Short returns the first eight characters, enough for display
func (id TaskID) Short() string {
	return id.value.String()[:8]
}

// IsZero reports whether the ID was never assigned
func (id TaskID) IsZero() bool {
	return id.value == uuid.Nil
}

// Equal compares two task IDs
func (id TaskID) Equal(other TaskID) bool {
	return id.value == other.value
}

// HasPrefix reports whether the canonical form starts with prefix, ignoring case
func (id TaskID) HasPrefix(prefix string) bool {
	return strings.HasPrefix(id.value.String(), strings.ToLower(prefix))
}
