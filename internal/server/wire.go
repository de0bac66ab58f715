//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/xoaadil/blogy/internal/adapters/postgres"
	"github.com/xoaadil/blogy/internal/adapters/rest"
	"github.com/xoaadil/blogy/internal/adapters/rest/middleware"
	commentsApp "github.com/xoaadil/blogy/internal/comments/application"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
	"github.com/xoaadil/blogy/internal/platform/logger"
	postsApp "github.com/xoaadil/blogy/internal/posts/application"
	usersApp "github.com/xoaadil/blogy/internal/users/application"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,

		// Main logger
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Database
		ConnectDatabase,

		// Repository providers (includes interface binding)
		postgres.ProviderSet,

		// Platform services
		eventbus.ProviderSet,

		// Auth services (config-dependent constructors)
		provideTokenService,
		provideAuthService,

		// Application services
		usersApp.ProviderSet,
		postsApp.ProviderSet,
		commentsApp.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion, // Provide version string for HealthHandler

		// Auth middleware
		middleware.ProviderSet,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
