package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment left on a post
type Comment struct {
	ID        uuid.UUID
	Content   string
	AuthorID  uuid.UUID // Immutable after creation
	PostID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxContentLength bounds comment bodies
const MaxContentLength = 2000

// Validation errors
var (
	ErrInvalidContent  = errors.New("content is required and must not exceed 2000 characters")
	ErrInvalidAuthorID = errors.New("author ID is required")
	ErrInvalidPostID   = errors.New("post ID is required")
)

// NewComment creates a new comment with validation
func NewComment(content string, authorID, postID uuid.UUID) (*Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}

	if postID == uuid.Nil {
		return nil, ErrInvalidPostID
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateContent replaces the comment body with validation
func (c *Comment) UpdateContent(content string) error {
	if err := validateContent(content); err != nil {
		return err
	}

	c.Content = content
	c.UpdatedAt = time.Now()
	return nil
}

func validateContent(content string) error {
	if content == "" || len(content) > MaxContentLength {
		return ErrInvalidContent
	}
	return nil
}
