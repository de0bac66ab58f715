package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/platform/validator"
)

// Post represents a blog post in the domain
type Post struct {
	ID       uuid.UUID
	Title    string
	Slug     string
	Content  string // Sanitized HTML content
	ImageURL string // Optional, already-hosted image
	AuthorID uuid.UUID
	// LikedBy holds the ids of users that currently like the post.
	// Membership is mutated only through the like toggle, never by edits.
	LikedBy   []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Business rule constants
const (
	MinTitleLength   = 3
	MaxTitleLength   = 200
	MinContentLength = 3
	MaxContentLength = 5000
	MaxSlugLength    = 250
)

// Validation errors
var (
	ErrInvalidTitle    = errors.New("title must be between 3 and 200 characters")
	ErrInvalidContent  = errors.New("content must be between 3 and 5000 characters")
	ErrInvalidSlug     = errors.New("slug is invalid or too long")
	ErrInvalidAuthorID = errors.New("author ID is required")
)

// NewPost creates a new post with validation. The creating actor becomes
// the author; authorship never changes afterwards.
func NewPost(title, content, imageURL string, authorID uuid.UUID) (*Post, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	// Generate slug from title
	slug := validator.GenerateSlug(title, MaxSlugLength)
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}

	now := time.Now()
	return &Post{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   content,
		ImageURL:  imageURL,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateContent updates the post's editable fields with validation.
// AuthorID and LikedBy are deliberately untouchable through edits.
func (p *Post) UpdateContent(title, content, imageURL string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	if err := validateContent(content); err != nil {
		return err
	}

	p.Title = title
	p.Content = content
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()

	return nil
}

// UpdateSlug updates the post slug with validation
// Note: Slug uniqueness must be checked by the service layer before calling this
func (p *Post) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	p.Slug = slug
	p.UpdatedAt = time.Now()
	return nil
}

// LikeCount returns the current number of likes
func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

// IsLikedBy reports whether the given user currently likes the post
func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Validation helpers

func validateTitle(title string) error {
	if len(title) < MinTitleLength || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateContent(content string) error {
	if len(content) < MinContentLength || len(content) > MaxContentLength {
		return ErrInvalidContent
	}
	return nil
}

func validateSlug(slug string) error {
	if err := validator.ValidateSlugFormat(slug, MaxSlugLength); err != nil {
		return ErrInvalidSlug
	}
	return nil
}
