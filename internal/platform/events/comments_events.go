package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
)

// Event topics for comments
const (
	CommentCreatedTopic eventbus.Topic = "comments.created"
	CommentDeletedTopic eventbus.Topic = "comments.deleted"
)

// CommentCreatedEvent is published when a comment is added to a post
type CommentCreatedEvent struct {
	CommentID  uuid.UUID
	PostID     uuid.UUID
	ActorID    uuid.UUID // Author of the comment
	OccurredAt time.Time
}

// CommentDeletedEvent is published when a comment is deleted
type CommentDeletedEvent struct {
	CommentID  uuid.UUID
	PostID     uuid.UUID
	ActorID    uuid.UUID // User who deleted the comment
	OccurredAt time.Time
}
