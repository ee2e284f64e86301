package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/infrastructure/persistence/mapper"
	"mtodo/internal/infrastructure/serialization"
	"mtodo/pkg/filesystem"
)

const filePerm os.FileMode = 0644

// TodoRepositoryImpl implements TodoRepository with a single document file
type TodoRepositoryImpl struct {
	pathBuilder *PathBuilder
	codec       *serialization.DocumentCodec
	now         func() time.Time
}

// Option configures a TodoRepositoryImpl
type Option func(*TodoRepositoryImpl)

// WithClock overrides the clock used to name backups
func WithClock(now func() time.Time) Option {
	return func(r *TodoRepositoryImpl) {
		r.now = now
	}
}

// NewTodoRepository creates a file-backed task repository. The document
// encoding follows the file extension.
func NewTodoRepository(dataDir, fileName string, opts ...Option) (*TodoRepositoryImpl, error) {
	pb := NewPathBuilder(dataDir, fileName)
	codec, err := serialization.NewDocumentCodec(serialization.FormatFromPath(pb.DataFile()))
	if err != nil {
		return nil, err
	}

	r := &TodoRepositoryImpl{
		pathBuilder: pb,
		codec:       codec,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Load reads the task collection from disk
func (r *TodoRepositoryImpl) Load(ctx context.Context) ([]*entity.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.pathBuilder.DataFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*entity.Task{}, nil
		}
		return nil, repository.NewPersistenceError("load", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*entity.Task{}, nil
	}

	var doc mapper.DocumentStorage
	if err := r.codec.Decode(data, &doc); err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}

	tasks, err := mapper.TasksFromDocument(doc)
	if err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}
	return tasks, nil
}

// Save atomically replaces the task collection on disk
func (r *TodoRepositoryImpl) Save(ctx context.Context, tasks []*entity.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.pathBuilder.DataFile()
	data, err := r.codec.Encode(mapper.TasksToDocument(tasks))
	if err != nil {
		return repository.NewPersistenceError("save", path, err)
	}

	if err := filesystem.SafeWrite(path, data, filePerm); err != nil {
		return repository.NewPersistenceError("save", path, err)
	}
	return nil
}

// Backup copies the store file next to itself with a timestamped name.
// An existing backup of the same name is never overwritten.
func (r *TodoRepositoryImpl) Backup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src := r.pathBuilder.DataFile()
	exists, err := filesystem.Exists(src)
	if err != nil {
		return "", repository.NewPersistenceError("backup", src, err)
	}
	if !exists {
		return "", nil
	}

	dst := r.pathBuilder.BackupFile(r.now())
	if err := filesystem.CopyFileExclusive(src, dst, filePerm); err != nil {
		return "", repository.NewPersistenceError("backup", dst, err)
	}
	return dst, nil
}

// Backups lists existing backup files, oldest first
func (r *TodoRepositoryImpl) Backups() ([]string, error) {
	matches, err := filepath.Glob(r.pathBuilder.BackupPattern())
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return matches, nil
}

// Location returns the store file path
func (r *TodoRepositoryImpl) Location() string {
	return r.pathBuilder.DataFile()
}

// Close implements TodoRepository. The file store holds no resources.
func (r *TodoRepositoryImpl) Close() error {
	return nil
}
