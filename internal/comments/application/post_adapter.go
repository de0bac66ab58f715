package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/comments/ports"
	postsports "github.com/xoaadil/blogy/internal/posts/ports"
)

// PostAdapter implements the PostProvider interface on top of the
// posts repository, keeping the comments module decoupled from the
// posts application layer.
type PostAdapter struct {
	posts postsports.PostRepository
}

// NewPostAdapter creates a new post adapter
func NewPostAdapter(posts postsports.PostRepository) *PostAdapter {
	return &PostAdapter{posts: posts}
}

// PostExists reports whether the post id refers to a live post
func (a *PostAdapter) PostExists(ctx context.Context, postID uuid.UUID) (bool, error) {
	_, err := a.posts.GetPostAuthor(ctx, postID)
	if err != nil {
		if errors.Is(err, postsports.ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ ports.PostProvider = (*PostAdapter)(nil)
