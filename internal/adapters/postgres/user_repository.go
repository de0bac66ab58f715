package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/postgres"
	"github.com/xoaadil/blogy/internal/users/domain"
	"github.com/xoaadil/blogy/internal/users/ports"
)

// UserRepository implements the users.UserRepository interface using PostgreSQL
type UserRepository struct {
	postgres.BaseRepository
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := r.SB.
		Insert("users").
		Columns(
			"id", "name", "email", "password_hash",
			"avatar_url", "bio", "role", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: user.ID, Valid: true},
			user.Name,
			user.Email,
			user.PasswordHash,
			user.AvatarURL,
			user.Bio,
			string(user.Role),
			pgtype.Timestamptz{Time: user.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: user.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}, "FindByID")
}

// FindByEmail retrieves a user by their email address
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email}, "FindByEmail")
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq, op string) (*domain.User, error) {
	query, args, err := r.SB.
		Select(
			"id", "name", "email", "password_hash",
			"avatar_url", "bio", "role", "created_at", "updated_at",
		).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepository.%s: build query: %w", op, err)
	}

	var user domain.User
	var idBytes pgtype.UUID
	var role string

	err = r.DB.QueryRow(ctx, query, args...).Scan(
		&idBytes,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.Bio,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserRepository.%s: %w", op, err)
	}

	user.ID = uuid.UUID(idBytes.Bytes)
	user.Role = authz.Role(role)

	return &user, nil
}

// ExistsByEmail checks whether a user with the given email is already registered
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	subQuery, subQueryArgs, err := r.SB.
		Select("1").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("UserRepository.ExistsByEmail: build subquery: %w", err)
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuery)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subQueryArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("UserRepository.ExistsByEmail: %w", err)
	}

	return exists, nil
}

// Compile-time check to ensure UserRepository implements ports.UserRepository
var _ ports.UserRepository = (*UserRepository)(nil)
