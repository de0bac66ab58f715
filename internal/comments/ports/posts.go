package ports

import (
	"context"

	"github.com/google/uuid"
)

// PostProvider is the comments module's view of the posts context.
// It exists so comments can verify a post before attaching to it
// without importing the posts module directly.
type PostProvider interface {
	// PostExists reports whether the post id refers to a live post
	PostExists(ctx context.Context, postID uuid.UUID) (bool, error)
}
