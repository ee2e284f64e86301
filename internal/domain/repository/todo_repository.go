package repository

import (
	"context"
	"fmt"

	"mtodo/internal/domain/entity"
)

// TodoRepository defines the interface for task collection persistence.
// The collection is always read and written as a whole.
type TodoRepository interface {
	// Load reads the stored collection. A missing or blank store yields an
	// empty collection and no error.
	Load(ctx context.Context) ([]*entity.Task, error)

	// Save replaces the stored collection
	Save(ctx context.Context, tasks []*entity.Task) error

	// Backup copies the current store to a timestamped sibling and returns
	// its path. It returns "" when there is nothing to back up.
	Backup(ctx context.Context) (string, error)

	// Location describes where the collection is stored
	Location() string

	// Close releases held resources
	Close() error
}

// PersistenceError reports a failed store operation. It is always
// recoverable: callers keep their in-memory state.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements error
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with the failed operation and store path
func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}
