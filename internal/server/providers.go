package server

import (
	"github.com/xoaadil/blogy/internal/auth"
	"github.com/xoaadil/blogy/internal/platform/logger"
	usersports "github.com/xoaadil/blogy/internal/users/ports"
)

// provideTokenService creates the token service from config
func provideTokenService(config Config) (*auth.TokenService, error) {
	return auth.NewTokenService(config.JWTSecret, config.JWTIssuer)
}

// provideAuthService creates the auth service from config
func provideAuthService(
	users usersports.UserRepository,
	tokens *auth.TokenService,
	config Config,
	log logger.Logger,
) *auth.Service {
	return auth.NewService(users, tokens, config.AdminPasscode, log)
}

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}
