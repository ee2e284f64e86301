package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	fspersist "mtodo/internal/infrastructure/persistence/filesystem"
	"mtodo/internal/infrastructure/persistence/mapper"
	"mtodo/pkg/filesystem"
)

// DefaultFileName is the database file name when none is configured
const DefaultFileName = "todos.db"

// TodoRepositoryImpl implements TodoRepository on a sqlite database. Row
// order is kept in the position column.
type TodoRepositoryImpl struct {
	pathBuilder *fspersist.PathBuilder
	db          *sql.DB
	now         func() time.Time
}

// NewTodoRepository creates a sqlite-backed task repository. The database
// is opened lazily so that a missing file stays missing until the first save.
func NewTodoRepository(dataDir, fileName string, now func() time.Time) *TodoRepositoryImpl {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if now == nil {
		now = time.Now
	}
	return &TodoRepositoryImpl{
		pathBuilder: fspersist.NewPathBuilder(dataDir, fileName),
		now:         now,
	}
}

func (r *TodoRepositoryImpl) open(ctx context.Context) (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	if err := filesystem.EnsureDir(r.pathBuilder.DataDir(), 0755); err != nil {
		return nil, err
	}
	db, err := Connect(ctx, r.pathBuilder.DataFile())
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	r.db = db
	return db, nil
}

func (r *TodoRepositoryImpl) exists() (bool, error) {
	if r.db != nil {
		return true, nil
	}
	return filesystem.Exists(r.pathBuilder.DataFile())
}

// Load reads all tasks in stored order
func (r *TodoRepositoryImpl) Load(ctx context.Context) ([]*entity.Task, error) {
	path := r.pathBuilder.DataFile()
	ok, err := r.exists()
	if err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}
	if !ok {
		return []*entity.Task{}, nil
	}

	db, err := r.open(ctx)
	if err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, due_date, category, priority, is_completed, created_date
		FROM todos ORDER BY position`)
	if err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		var s mapper.TodoStorage
		var priority string
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.DueDate, &s.Category, &priority, &s.IsCompleted, &s.CreatedDate); err != nil {
			return nil, repository.NewPersistenceError("load", path, err)
		}
		s.Priority = mapper.PriorityField(priority)
		task, err := mapper.TaskFromStorage(s)
		if err != nil {
			return nil, repository.NewPersistenceError("load", path, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewPersistenceError("load", path, err)
	}
	return tasks, nil
}

// Save replaces every stored row in one transaction
func (r *TodoRepositoryImpl) Save(ctx context.Context, tasks []*entity.Task) error {
	path := r.pathBuilder.DataFile()
	db, err := r.open(ctx)
	if err != nil {
		return repository.NewPersistenceError("save", path, err)
	}

	if err := r.replaceAll(ctx, db, tasks); err != nil {
		return repository.NewPersistenceError("save", path, err)
	}
	return nil
}

func (r *TodoRepositoryImpl) replaceAll(ctx context.Context, db *sql.DB, tasks []*entity.Task) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM todos"); err != nil {
		return fmt.Errorf("could not clear todos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO todos (id, position, title, description, due_date, category, priority, is_completed, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		s := mapper.TaskToStorage(t)
		if _, err := stmt.ExecContext(ctx, s.ID, i, s.Title, s.Description, s.DueDate, s.Category,
			string(s.Priority), s.IsCompleted, s.CreatedDate); err != nil {
			return fmt.Errorf("could not insert todo %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// Backup writes a consistent copy of the database with VACUUM INTO
func (r *TodoRepositoryImpl) Backup(ctx context.Context) (string, error) {
	src := r.pathBuilder.DataFile()
	ok, err := r.exists()
	if err != nil {
		return "", repository.NewPersistenceError("backup", src, err)
	}
	if !ok {
		return "", nil
	}

	dst := r.pathBuilder.BackupFile(r.now())
	taken, err := filesystem.Exists(dst)
	if err != nil {
		return "", repository.NewPersistenceError("backup", dst, err)
	}
	if taken {
		return "", repository.NewPersistenceError("backup", dst, filesystem.ErrDestinationExists)
	}

	db, err := r.open(ctx)
	if err != nil {
		return "", repository.NewPersistenceError("backup", src, err)
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		return "", repository.NewPersistenceError("backup", dst, err)
	}
	return dst, nil
}

// Location returns the database file path
func (r *TodoRepositoryImpl) Location() string {
	return r.pathBuilder.DataFile()
}

// Close closes the database if it was opened
func (r *TodoRepositoryImpl) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
