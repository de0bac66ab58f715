package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xoaadil/blogy/internal/posts/domain"
)

func TestNewPost(t *testing.T) {
	authorID := uuid.New()

	post, err := domain.NewPost("My First Post", "Hello, world! This is some content.", "", authorID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, "My First Post", post.Title)
	assert.Equal(t, "my-first-post", post.Slug)
	assert.Equal(t, "Hello, world! This is some content.", post.Content)
	assert.Equal(t, authorID, post.AuthorID)
	assert.Empty(t, post.LikedBy)
	assert.NotZero(t, post.CreatedAt)
	assert.NotZero(t, post.UpdatedAt)
}

func TestNewPost_Validation(t *testing.T) {
	authorID := uuid.New()

	tests := []struct {
		name     string
		title    string
		content  string
		authorID uuid.UUID
		wantErr  error
	}{
		{
			name:     "title too short",
			title:    "ab",
			content:  "valid content",
			authorID: authorID,
			wantErr:  domain.ErrInvalidTitle,
		},
		{
			name:     "title too long",
			title:    strings.Repeat("a", domain.MaxTitleLength+1),
			content:  "valid content",
			authorID: authorID,
			wantErr:  domain.ErrInvalidTitle,
		},
		{
			name:     "content too short",
			title:    "Valid Title",
			content:  "ab",
			authorID: authorID,
			wantErr:  domain.ErrInvalidContent,
		},
		{
			name:     "content too long",
			title:    "Valid Title",
			content:  strings.Repeat("a", domain.MaxContentLength+1),
			authorID: authorID,
			wantErr:  domain.ErrInvalidContent,
		},
		{
			name:     "missing author",
			title:    "Valid Title",
			content:  "valid content",
			authorID: uuid.Nil,
			wantErr:  domain.ErrInvalidAuthorID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := domain.NewPost(tt.title, tt.content, "", tt.authorID)
			assert.Nil(t, post)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPost_UpdateContent(t *testing.T) {
	authorID := uuid.New()
	post, err := domain.NewPost("Original Title", "original content", "", authorID)
	require.NoError(t, err)

	originalSlug := post.Slug
	originalUpdatedAt := post.UpdatedAt

	err = post.UpdateContent("Updated Title", "updated content", "https://example.com/img.png")
	require.NoError(t, err)

	assert.Equal(t, "Updated Title", post.Title)
	assert.Equal(t, "updated content", post.Content)
	assert.Equal(t, "https://example.com/img.png", post.ImageURL)
	// Slug regeneration is a service-level concern
	assert.Equal(t, originalSlug, post.Slug)
	assert.True(t, !post.UpdatedAt.Before(originalUpdatedAt))
}

func TestPost_UpdateContent_PreservesAuthorAndLikes(t *testing.T) {
	authorID := uuid.New()
	liker := uuid.New()

	post, err := domain.NewPost("Some Title", "some content", "", authorID)
	require.NoError(t, err)
	post.LikedBy = []uuid.UUID{liker}

	err = post.UpdateContent("New Title", "new content", "")
	require.NoError(t, err)

	assert.Equal(t, authorID, post.AuthorID)
	assert.Equal(t, []uuid.UUID{liker}, post.LikedBy)
}

func TestPost_UpdateContent_Validation(t *testing.T) {
	post, err := domain.NewPost("Some Title", "some content", "", uuid.New())
	require.NoError(t, err)

	err = post.UpdateContent("ab", "new content", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	// Failed validation leaves the post unchanged
	assert.Equal(t, "Some Title", post.Title)
	assert.Equal(t, "some content", post.Content)
}

func TestPost_UpdateSlug(t *testing.T) {
	post, err := domain.NewPost("Some Title", "some content", "", uuid.New())
	require.NoError(t, err)

	err = post.UpdateSlug("some-title-2")
	require.NoError(t, err)
	assert.Equal(t, "some-title-2", post.Slug)

	err = post.UpdateSlug("Not A Valid Slug!")
	assert.ErrorIs(t, err, domain.ErrInvalidSlug)
	assert.Equal(t, "some-title-2", post.Slug)
}

func TestPost_Likes(t *testing.T) {
	post, err := domain.NewPost("Some Title", "some content", "", uuid.New())
	require.NoError(t, err)

	userA := uuid.New()
	userB := uuid.New()

	assert.Equal(t, 0, post.LikeCount())
	assert.False(t, post.IsLikedBy(userA))

	post.LikedBy = []uuid.UUID{userA, userB}

	assert.Equal(t, 2, post.LikeCount())
	assert.True(t, post.IsLikedBy(userA))
	assert.True(t, post.IsLikedBy(userB))
	assert.False(t, post.IsLikedBy(uuid.New()))
}
