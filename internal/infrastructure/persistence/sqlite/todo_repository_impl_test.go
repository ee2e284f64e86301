package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/valueobject"
	"mtodo/pkg/filesystem"
)

var fixedNow = time.Date(2026, 2, 9, 14, 5, 33, 0, time.UTC)

func newRepo(t *testing.T) (*TodoRepositoryImpl, string) {
	t.Helper()
	dir := t.TempDir()
	repo := NewTodoRepository(dir, "", func() time.Time { return fixedNow })
	t.Cleanup(func() { repo.Close() })
	return repo, dir
}

func makeTasks(t *testing.T, titles ...string) []*entity.Task {
	t.Helper()
	var out []*entity.Task
	for i, title := range titles {
		task, err := entity.ReconstructTask(valueobject.NewTaskID(), title, "desc "+title, "Cat",
			valueobject.NewDate(2026, 2, 10+i), valueobject.Priorities[i%3], i%2 == 0, fixedNow)
		require.NoError(t, err)
		out = append(out, task)
	}
	return out
}

func TestLoadMissingDatabase(t *testing.T) {
	repo, dir := newRepo(t)
	tasks, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	ok, err := filesystem.Exists(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.False(t, ok, "load must not create the database")
}

func TestSaveLoadKeepsOrderAndFields(t *testing.T) {
	repo, dir := newRepo(t)
	want := makeTasks(t, "c", "a", "b")
	require.NoError(t, repo.Save(context.Background(), want))
	require.NoError(t, repo.Save(context.Background(), want[:2]))
	require.NoError(t, repo.Close())

	reopened := NewTodoRepository(dir, "", nil)
	defer reopened.Close()
	got, err := reopened.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range got {
		assert.True(t, want[i].ID().Equal(got[i].ID()))
		assert.Equal(t, want[i].Title(), got[i].Title())
		assert.Equal(t, want[i].Description(), got[i].Description())
		assert.True(t, want[i].DueDate().Equal(got[i].DueDate()))
		assert.Equal(t, want[i].Priority(), got[i].Priority())
		assert.Equal(t, want[i].IsCompleted(), got[i].IsCompleted())
		assert.True(t, want[i].CreatedDate().Equal(got[i].CreatedDate()))
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateUp(ctx, db))
	require.NoError(t, MigrateUp(ctx, db))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestBackup(t *testing.T) {
	repo, dir := newRepo(t)

	path, err := repo.Backup(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, repo.Save(context.Background(), makeTasks(t, "x")))
	path, err = repo.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "todos_backup_20260209_140533.db"), path)

	_, err = repo.Backup(context.Background())
	var perr *repository.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, filesystem.ErrDestinationExists)

	backupDir, backupName := filepath.Split(path)
	copyRepo := NewTodoRepository(backupDir, backupName, nil)
	defer copyRepo.Close()
	tasks, err := copyRepo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "x", tasks[0].Title())
}
