package di

import (
	"os"

	"github.com/charmbracelet/log"

	"mtodo/internal/application/reminder"
	"mtodo/internal/application/session"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/service"
	"mtodo/internal/infrastructure/config"
	"mtodo/internal/infrastructure/logging"
	"mtodo/internal/infrastructure/notify"
	"mtodo/internal/infrastructure/persistence/filesystem"
	"mtodo/internal/infrastructure/persistence/sqlite"
)

// ConfigPath is an explicit config file. Empty selects the default location.
type ConfigPath string

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *log.Logger

	// Repositories
	TodoRepo repository.TodoRepository

	// Domain Services
	ValidationService *service.ValidationService
	ViewService       *service.ViewService
	ReminderService   *service.ReminderService

	// Application
	Session  *session.Session
	Notifier notify.Notifier
	Watcher  *reminder.Watcher
}

// Provider functions

func ProvideConfig(path ConfigPath) (*config.Config, error) {
	if path != "" {
		return config.NewLoaderFrom(string(path)).Load()
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func ProvideLogger(cfg *config.Config) *log.Logger {
	return logging.New(cfg.Logging, os.Stderr)
}

// ProvideTodoRepository selects the store driver and applies the profile
// suffix to the file name.
func ProvideTodoRepository(cfg *config.Config) (repository.TodoRepository, func(), error) {
	var repo repository.TodoRepository
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		fileName := cfg.Storage.FileName
		if fileName == "" {
			fileName = sqlite.DefaultFileName
		}
		repo = sqlite.NewTodoRepository(cfg.Storage.DataDir,
			filesystem.ProfileFileName(fileName, cfg.Storage.Profile), nil)
	default:
		fsRepo, err := filesystem.NewTodoRepository(cfg.Storage.DataDir,
			filesystem.ProfileFileName(cfg.Storage.FileName, cfg.Storage.Profile))
		if err != nil {
			return nil, nil, err
		}
		repo = fsRepo
	}

	cleanup := func() {
		_ = repo.Close()
	}
	return repo, cleanup, nil
}

func ProvideValidationService() *service.ValidationService {
	return service.NewValidationService()
}

func ProvideViewService() *service.ViewService {
	return service.NewViewService()
}

func ProvideReminderService(cfg *config.Config) *service.ReminderService {
	return service.NewReminderService(cfg.Reminders.MaxListed)
}

func ProvideSessionOptions(cfg *config.Config) []session.Option {
	return []session.Option{session.WithDateFormat(cfg.Display.DateFormat)}
}

// ProvideNotifier prints reminders to stdout and, when enabled, raises a
// desktop notification as well.
func ProvideNotifier(cfg *config.Config) notify.Notifier {
	notifiers := notify.Multi{notify.NewConsoleNotifier(os.Stdout)}
	if cfg.Reminders.DesktopNotifications {
		notifiers = append(notifiers, notify.NewDesktopNotifier())
	}
	return notifiers
}

func ProvideReminderWatcher(
	cfg *config.Config,
	repo repository.TodoRepository,
	reminders *service.ReminderService,
	notifier notify.Notifier,
	logger *log.Logger,
) *reminder.Watcher {
	return reminder.NewWatcher(repo, reminders, notifier, logger, cfg.Reminders.IntervalDuration())
}
