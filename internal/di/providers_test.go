package di

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/infrastructure/config"
	"mtodo/internal/infrastructure/notify"
	"mtodo/internal/infrastructure/persistence/filesystem"
	"mtodo/internal/infrastructure/persistence/sqlite"
)

func TestProvideTodoRepository_SelectsDriver(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Storage.DataDir = dir
	repo, cleanup, err := ProvideTodoRepository(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &filesystem.TodoRepositoryImpl{}, repo)
	assert.Equal(t, filepath.Join(dir, "todos.json"), repo.Location())

	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.Profile = "Work Stuff"
	repo, cleanup, err = ProvideTodoRepository(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &sqlite.TodoRepositoryImpl{}, repo)
	assert.Equal(t, filepath.Join(dir, "todos-work-stuff.db"), repo.Location())
}

func TestProvideNotifier_DesktopOptIn(t *testing.T) {
	cfg := config.Default()
	cfg.Reminders.DesktopNotifications = false
	n, ok := ProvideNotifier(cfg).(notify.Multi)
	require.True(t, ok)
	assert.Len(t, n, 1)

	cfg.Reminders.DesktopNotifications = true
	n = ProvideNotifier(cfg).(notify.Multi)
	assert.Len(t, n, 2)
}

func TestInitializeContainer_CustomConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)

	container, cleanup, err := InitializeContainer(ConfigPath(filepath.Join(dir, "missing.yml")))
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, dir, container.Config.Storage.DataDir)
	assert.NotNil(t, container.Session)
	assert.NotNil(t, container.Watcher)
	assert.Equal(t, filepath.Join(dir, "todos.json"), container.TodoRepo.Location())
}
