package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/comments/domain"
)

// ErrCommentNotFound is returned when a comment cannot be found.
// The PostgreSQL implementation translates pgx.ErrNoRows to this error.
var ErrCommentNotFound = errors.New("comment not found")

// CommentWithAuthor decorates a comment with display fields joined
// from the users table, for listing under a post
type CommentWithAuthor struct {
	ID         uuid.UUID
	Content    string
	AuthorID   uuid.UUID
	AuthorName string
	AvatarURL  string
	PostID     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Create saves a new comment
	Create(ctx context.Context, comment *domain.Comment) error

	// FindByID retrieves a comment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Update modifies an existing comment's content
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment
	Delete(ctx context.Context, id uuid.UUID) error

	// ListForPost retrieves all comments on a post, oldest first,
	// with author display fields joined in
	ListForPost(ctx context.Context, postID uuid.UUID) ([]*CommentWithAuthor, error)

	// ListByAuthor retrieves all comments written by a user, newest
	// first, with author display fields joined in
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*CommentWithAuthor, error)

	// DeleteByPost removes every comment on a post. Used by the
	// post-deletion cascade.
	DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error)
}
