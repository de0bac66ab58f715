package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/authz"
)

var (
	ErrInvalidName   = errors.New("name must be between 3 and 100 characters")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmptyPassword = errors.New("password hash cannot be empty")
	ErrInvalidRole   = errors.New("invalid role")
)

// Profile defaults applied to new accounts
const (
	DefaultAvatarURL = "https://cdn-icons-png.flaticon.com/512/149/149071.png"
	DefaultBio       = "Hello I am new at Blogy"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User is a registered account. PasswordHash is a bcrypt digest and is
// never serialized out of the service.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	AvatarURL    string
	Bio          string
	Role         authz.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user with validation and profile defaults.
// The password must already be hashed; the domain never sees plaintext.
func NewUser(name, email, passwordHash string, role authz.Role) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		AvatarURL:    DefaultAvatarURL,
		Bio:          DefaultBio,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Actor returns the authorization identity for this user
func (u *User) Actor() authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role}
}

func validateName(name string) error {
	if len(name) < 3 || len(name) > 100 {
		return ErrInvalidName
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
