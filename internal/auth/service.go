package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/apperror"
	"github.com/xoaadil/blogy/internal/platform/logger"
	"github.com/xoaadil/blogy/internal/users/domain"
	"github.com/xoaadil/blogy/internal/users/ports"
	"golang.org/x/crypto/bcrypt"
)

// Error definitions for auth operations
var (
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeEmailTaken,
		"this email address is already registered",
		http.StatusConflict,
	)

	// ErrInvalidCredentials deliberately does not reveal whether the
	// email or the password was wrong
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeInvalidCredentials,
		"invalid credentials",
		http.StatusUnauthorized,
	)

	ErrInvalidSignupData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid signup data",
		http.StatusBadRequest,
	)
)

// Password length bounds, matching the original signup rules
const (
	MinPasswordLength = 4
	MaxPasswordLength = 100
)

// Service handles account registration and login
type Service struct {
	users         ports.UserRepository
	tokens        *TokenService
	adminPasscode string
	logger        logger.Logger
}

// NewService creates a new auth service. adminPasscode may be empty,
// in which case no signup can mint an admin account.
func NewService(users ports.UserRepository, tokens *TokenService, adminPasscode string, logger logger.Logger) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		adminPasscode: adminPasscode,
		logger:        logger,
	}
}

// SignupParams contains the fields accepted at registration
type SignupParams struct {
	Name     string
	Email    string
	Password string
	// AdminCode grants the admin role when it matches the configured
	// passcode. Any other value silently falls back to a regular account.
	AdminCode string
}

// Signup registers a new account and returns it with a fresh token
func (s *Service) Signup(ctx context.Context, params SignupParams) (*domain.User, string, error) {
	if len(params.Password) < MinPasswordLength || len(params.Password) > MaxPasswordLength {
		return nil, "", ErrInvalidSignupData.WithDetails("password must be between 4 and 100 characters")
	}

	taken, err := s.users.ExistsByEmail(ctx, params.Email)
	if err != nil {
		s.logger.Error(ctx, "failed to check email availability", "error", err)
		return nil, "", s.internalError("signup failed")
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, "", s.internalError("signup failed")
	}

	role := authz.RoleUser
	if s.adminPasscode != "" && params.AdminCode == s.adminPasscode {
		role = authz.RoleAdmin
	}

	user, err := domain.NewUser(params.Name, params.Email, string(hash), role)
	if err != nil {
		return nil, "", ErrInvalidSignupData.WithDetails(err.Error())
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error(ctx, "failed to create user", "error", err)
		return nil, "", s.internalError("signup failed")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to issue token", "error", err, "userID", user.ID)
		return nil, "", s.internalError("signup failed")
	}

	s.logger.Info(ctx, "user signed up", "userID", user.ID, "role", user.Role)

	return user, token, nil
}

// Login authenticates by email and password and returns a fresh token
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error(ctx, "failed to look up user", "error", err)
		return nil, "", s.internalError("login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to issue token", "error", err, "userID", user.ID)
		return nil, "", s.internalError("login failed")
	}

	return user, token, nil
}

// ResolveActor turns a bearer token into the acting identity. The user
// record is re-read on every call so the role is always current and a
// deleted account stops authenticating immediately.
func (s *Service) ResolveActor(ctx context.Context, tokenString string) (authz.Actor, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return authz.Actor{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return authz.Actor{}, ErrInvalidToken
		}
		s.logger.Error(ctx, "failed to resolve actor", "error", err, "userID", userID)
		return authz.Actor{}, err
	}

	return user.Actor(), nil
}

func (s *Service) internalError(message string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		message,
		http.StatusInternalServerError,
	)
}
