package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
)

// Event topics for posts
const (
	PostCreatedTopic eventbus.Topic = "posts.created"
	PostUpdatedTopic eventbus.Topic = "posts.updated"
	PostDeletedTopic eventbus.Topic = "posts.deleted"
	PostLikedTopic   eventbus.Topic = "posts.liked"
)

// PostCreatedEvent is published when a new post is created
type PostCreatedEvent struct {
	PostID     uuid.UUID
	ActorID    uuid.UUID // Author who created the post
	Title      string
	Slug       string
	OccurredAt time.Time
}

// PostUpdatedEvent is published when a post is updated
type PostUpdatedEvent struct {
	PostID     uuid.UUID
	ActorID    uuid.UUID // User who updated the post
	Title      string
	Slug       string
	OccurredAt time.Time
}

// PostDeletedEvent is published when a post is deleted.
// The comments module subscribes to this to remove the post's comments.
type PostDeletedEvent struct {
	PostID     uuid.UUID
	ActorID    uuid.UUID // User who deleted the post
	OccurredAt time.Time
}

// PostLikedEvent is published when a user likes a post.
// Unliking does not emit an event.
type PostLikedEvent struct {
	PostID     uuid.UUID
	ActorID    uuid.UUID // User who liked the post
	OccurredAt time.Time
}
