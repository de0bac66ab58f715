package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/users/domain"
)

// ErrUserNotFound is the canonical not-found error for user lookups
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
