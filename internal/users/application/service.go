package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/platform/apperror"
	"github.com/xoaadil/blogy/internal/platform/logger"
	"github.com/xoaadil/blogy/internal/users/domain"
	"github.com/xoaadil/blogy/internal/users/ports"
)

// ErrUserNotFound is returned when a profile lookup misses
var ErrUserNotFound = apperror.New(
	apperror.CodeNotFound,
	apperror.BusinessCodeUserNotFound,
	"user not found",
	http.StatusNotFound,
)

// UsersService exposes public profile reads
type UsersService struct {
	repo   ports.UserRepository
	logger logger.Logger
}

// NewUsersService creates a new users service
func NewUsersService(repo ports.UserRepository, logger logger.Logger) *UsersService {
	return &UsersService{
		repo:   repo,
		logger: logger,
	}
}

// GetProfile retrieves a user's public profile by id
func (s *UsersService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to find user", "error", err, "userID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve user",
			http.StatusInternalServerError,
		)
	}
	return user, nil
}
