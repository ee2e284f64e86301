//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"mtodo/internal/application/session"
)

// InitializeContainer sets up all dependencies
func InitializeContainer(configPath ConfigPath) (*Container, func(), error) {
	wire.Build(
		// Config and logging
		ProvideConfig,
		ProvideLogger,

		// Repositories
		ProvideTodoRepository,

		// Domain Services
		ProvideValidationService,
		ProvideViewService,
		ProvideReminderService,

		// Application
		ProvideSessionOptions,
		session.New,
		ProvideNotifier,
		ProvideReminderWatcher,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
