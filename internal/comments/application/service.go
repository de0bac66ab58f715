package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/comments/domain"
	"github.com/xoaadil/blogy/internal/comments/ports"
	"github.com/xoaadil/blogy/internal/platform/apperror"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
	"github.com/xoaadil/blogy/internal/platform/events"
	"github.com/xoaadil/blogy/internal/platform/logger"
)

// Error definitions for service operations
var (
	ErrCommentNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeCommentNotFound,
		"comment not found",
		http.StatusNotFound,
	)

	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrNotCommentOwner = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodePermissionDenied,
		"only the comment owner or an admin may modify this comment",
		http.StatusForbidden,
	)

	ErrInvalidCommentData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid comment data",
		http.StatusBadRequest,
	)
)

// CommentsService handles comment-related business logic. Mutations
// follow the same load-then-check order as posts: a missing comment is
// not found, a failed ownership check is forbidden, and only then does
// the write happen.
type CommentsService struct {
	repo      ports.CommentRepository
	posts     ports.PostProvider
	eventBus  *eventbus.Bus
	logger    logger.Logger
	sanitizer *bluemonday.Policy
}

// NewCommentsService creates a new comments service and subscribes it
// to post deletions so orphaned comments are cleaned up.
func NewCommentsService(
	repo ports.CommentRepository,
	posts ports.PostProvider,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *CommentsService {
	s := &CommentsService{
		repo:      repo,
		posts:     posts,
		eventBus:  eventBus,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}

	eventBus.Subscribe(events.PostDeletedTopic, s.handlePostDeleted)

	return s
}

// CreateComment adds a comment to an existing post
func (s *CommentsService) CreateComment(ctx context.Context, actor authz.Actor, postID uuid.UUID, content string) (*domain.Comment, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		s.logger.Error(ctx, "failed to check post existence", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create comment",
			http.StatusInternalServerError,
		)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	// Comments are plain text; strip all markup
	sanitized := s.sanitizer.Sanitize(content)

	comment, err := domain.NewComment(sanitized, actor.ID, postID)
	if err != nil {
		return nil, ErrInvalidCommentData.WithDetails(err.Error())
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		s.logger.Error(ctx, "failed to create comment", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create comment",
			http.StatusInternalServerError,
		)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentCreatedTopic,
		Payload: events.CommentCreatedEvent{
			CommentID:  comment.ID,
			PostID:     postID,
			ActorID:    actor.ID,
			OccurredAt: time.Now(),
		},
	})

	return comment, nil
}

// UpdateComment edits a comment after an ownership check
func (s *CommentsService) UpdateComment(ctx context.Context, actor authz.Actor, id uuid.UUID, content string) (*domain.Comment, error) {
	comment, err := s.getCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(actor, comment.AuthorID) {
		return nil, ErrNotCommentOwner
	}

	sanitized := s.sanitizer.Sanitize(content)

	if err := comment.UpdateContent(sanitized); err != nil {
		return nil, ErrInvalidCommentData.WithDetails(err.Error())
	}

	if err := s.repo.Update(ctx, comment); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to update comment", "error", err, "commentID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to update comment",
			http.StatusInternalServerError,
		)
	}

	return comment, nil
}

// DeleteComment removes a comment after an ownership check
func (s *CommentsService) DeleteComment(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	comment, err := s.getCommentByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(actor, comment.AuthorID) {
		return ErrNotCommentOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to delete comment", "error", err, "commentID", id)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to delete comment",
			http.StatusInternalServerError,
		)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentDeletedTopic,
		Payload: events.CommentDeletedEvent{
			CommentID:  comment.ID,
			PostID:     comment.PostID,
			ActorID:    actor.ID,
			OccurredAt: time.Now(),
		},
	})

	return nil
}

// ListCommentsForPost returns all comments on a post, oldest first
func (s *CommentsService) ListCommentsForPost(ctx context.Context, postID uuid.UUID) ([]*ports.CommentWithAuthor, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		s.logger.Error(ctx, "failed to check post existence", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list comments",
			http.StatusInternalServerError,
		)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.ListForPost(ctx, postID)
	if err != nil {
		s.logger.Error(ctx, "failed to list comments", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list comments",
			http.StatusInternalServerError,
		)
	}

	return comments, nil
}

// ListCommentsByAuthor returns all comments written by a user
func (s *CommentsService) ListCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*ports.CommentWithAuthor, error) {
	comments, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		s.logger.Error(ctx, "failed to list comments by author", "error", err, "authorID", authorID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list comments",
			http.StatusInternalServerError,
		)
	}

	return comments, nil
}

// Private helper methods

func (s *CommentsService) getCommentByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to find comment", "error", err, "commentID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve comment",
			http.StatusInternalServerError,
		)
	}
	return comment, nil
}

// handlePostDeleted removes every comment on a deleted post
func (s *CommentsService) handlePostDeleted(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Payload.(events.PostDeletedEvent)
	if !ok {
		s.logger.Warn(ctx, "unexpected payload on post deleted topic")
		return nil
	}

	removed, err := s.repo.DeleteByPost(ctx, payload.PostID)
	if err != nil {
		s.logger.Error(ctx, "failed to cascade comment deletion", "error", err, "postID", payload.PostID)
		return err
	}

	if removed > 0 {
		s.logger.Info(ctx, "removed comments for deleted post", "postID", payload.PostID, "count", removed)
	}

	return nil
}
