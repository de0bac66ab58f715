package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/apperror"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
	"github.com/xoaadil/blogy/internal/platform/events"
	"github.com/xoaadil/blogy/internal/platform/logger"
	"github.com/xoaadil/blogy/internal/platform/postgres"
	"github.com/xoaadil/blogy/internal/platform/validator"
	"github.com/xoaadil/blogy/internal/posts/domain"
	"github.com/xoaadil/blogy/internal/posts/ports"
)

// Error definitions for service operations
var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrNotPostOwner = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodePermissionDenied,
		"only the post owner or an admin may modify this post",
		http.StatusForbidden,
	)

	ErrSlugAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeSlugAlreadyExists,
		"slug already exists",
		http.StatusConflict,
	)

	ErrInvalidPostData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid post data",
		http.StatusBadRequest,
	)
)

// PostsService handles post-related business logic.
//
// Every mutating operation loads the resource fresh from the repository
// before anything else, so a missing post is reported as not found even
// when the caller would not have owned it. Ownership is then checked
// against the freshly loaded author id and the mutation runs last.
type PostsService struct {
	repo      ports.PostRepository
	txManager postgres.TransactionManager
	eventBus  *eventbus.Bus
	logger    logger.Logger
	sanitizer *bluemonday.Policy
}

// NewPostsService creates a new posts service
func NewPostsService(
	repo ports.PostRepository,
	txManager postgres.TransactionManager,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *PostsService {
	return &PostsService{
		repo:      repo,
		txManager: txManager,
		eventBus:  eventBus,
		logger:    logger,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// CreatePostParams contains parameters for creating a new post
type CreatePostParams struct {
	Title    string
	Content  string
	ImageURL string
}

// CreatePost creates a new blog post owned by the acting user
func (s *PostsService) CreatePost(ctx context.Context, actor authz.Actor, params CreatePostParams) (*domain.Post, error) {
	// Sanitize HTML content
	sanitizedContent := s.sanitizer.Sanitize(params.Content)

	// The actor becomes the author
	post, err := domain.NewPost(params.Title, sanitizedContent, params.ImageURL, actor.ID)
	if err != nil {
		return nil, ErrInvalidPostData.WithDetails(err.Error())
	}

	// Ensure slug uniqueness
	uniqueSlug, err := s.ensureUniqueSlug(ctx, post.Slug, nil)
	if err != nil {
		return nil, err
	}

	if uniqueSlug != post.Slug {
		if err := post.UpdateSlug(uniqueSlug); err != nil {
			return nil, ErrInvalidPostData.WithDetails(err.Error())
		}
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to create post", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create post",
			http.StatusInternalServerError,
		)
	}

	s.publishPostCreatedEvent(ctx, post)

	return post, nil
}

// UpdatePostParams contains parameters for updating a post
type UpdatePostParams struct {
	Title    string
	Content  string
	ImageURL string
}

// UpdatePost updates an existing post after an ownership check
func (s *PostsService) UpdatePost(ctx context.Context, actor authz.Actor, id uuid.UUID, params UpdatePostParams) (*domain.Post, error) {
	// Fetch the existing post first; a missing post is not found,
	// never forbidden
	post, err := s.getPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(actor, post.AuthorID) {
		return nil, ErrNotPostOwner
	}

	// Sanitize HTML content
	sanitizedContent := s.sanitizer.Sanitize(params.Content)

	if err := post.UpdateContent(params.Title, sanitizedContent, params.ImageURL); err != nil {
		return nil, ErrInvalidPostData.WithDetails(err.Error())
	}

	// Check if title changed and we need a new slug
	newSlug := validator.GenerateSlug(params.Title, domain.MaxSlugLength)
	if newSlug != post.Slug {
		uniqueSlug, err := s.ensureUniqueSlug(ctx, newSlug, &id)
		if err != nil {
			return nil, err
		}
		if err := post.UpdateSlug(uniqueSlug); err != nil {
			return nil, ErrInvalidPostData.WithDetails(err.Error())
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to update post", "error", err, "postID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to update post",
			http.StatusInternalServerError,
		)
	}

	s.publishPostUpdatedEvent(ctx, actor, post)

	return post, nil
}

// DeletePost removes a post after an ownership check. Deletion is
// terminal: later operations on the same id report not found.
func (s *PostsService) DeletePost(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	post, err := s.getPostByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanMutate(actor, post.AuthorID) {
		return ErrNotPostOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to delete post", "error", err, "postID", id)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to delete post",
			http.StatusInternalServerError,
		)
	}

	// Publish event so other modules can clean up
	s.publishPostDeletedEvent(ctx, actor, post)

	return nil
}

// LikeResult reports the outcome of a like toggle
type LikeResult struct {
	Liked     bool
	LikeCount int
	LikedBy   []uuid.UUID
}

// ToggleLike flips the acting user's membership in the post's liked-by set
// and reports the resulting state. Any authenticated user may like any
// post, their own included; no ownership check applies.
//
// The toggle and the follow-up read of the set run in one transaction, and
// the toggle itself is a conditional write arbitrated by the post_likes
// primary key, so two concurrent toggles cannot both add or both remove.
func (s *PostsService) ToggleLike(ctx context.Context, actor authz.Actor, postID uuid.UUID) (*LikeResult, error) {
	// Verify the post exists so a missing post surfaces as not found
	if _, err := s.repo.GetPostAuthor(ctx, postID); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to load post for like toggle", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to toggle like",
			http.StatusInternalServerError,
		)
	}

	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to begin like toggle transaction", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to toggle like",
			http.StatusInternalServerError,
		)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := s.repo.WithTx(tx.Tx())

	liked, err := txRepo.ToggleLike(ctx, postID, actor.ID)
	if err != nil {
		// The post can be deleted after the existence check above;
		// the repository reports that as not found
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to toggle like", "error", err, "postID", postID, "userID", actor.ID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to toggle like",
			http.StatusInternalServerError,
		)
	}

	likedBy, err := txRepo.ListLikers(ctx, postID)
	if err != nil {
		s.logger.Error(ctx, "failed to list likers", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to toggle like",
			http.StatusInternalServerError,
		)
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error(ctx, "failed to commit like toggle", "error", err, "postID", postID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to toggle like",
			http.StatusInternalServerError,
		)
	}

	if liked {
		s.publishPostLikedEvent(ctx, actor, postID)
	}

	return &LikeResult{
		Liked:     liked,
		LikeCount: len(likedBy),
		LikedBy:   likedBy,
	}, nil
}

// GetPost retrieves a post by ID
func (s *PostsService) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.getPostByID(ctx, id)
}

// GetPostBySlug retrieves a post by its slug
func (s *PostsService) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to find post by slug", "error", err, "slug", slug)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve post",
			http.StatusInternalServerError,
		)
	}
	return post, nil
}

// ListPosts retrieves a list of post summaries
func (s *PostsService) ListPosts(ctx context.Context, filter ports.ListFilter) ([]*ports.PostSummary, int, error) {
	summaries, err := s.repo.ListSummaries(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list posts", "error", err)
		return nil, 0, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list posts",
			http.StatusInternalServerError,
		)
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count posts", "error", err)
		return nil, 0, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to count posts",
			http.StatusInternalServerError,
		)
	}

	return summaries, count, nil
}

// Private helper methods

// getPostByID fetches a post and handles not-found errors consistently
func (s *PostsService) getPostByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to find post", "error", err, "postID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve post",
			http.StatusInternalServerError,
		)
	}
	return post, nil
}

func (s *PostsService) ensureUniqueSlug(ctx context.Context, baseSlug string, excludeID *uuid.UUID) (string, error) {
	slug := baseSlug
	suffix := 1

	for {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			s.logger.Error(ctx, "failed to check slug existence", "error", err, "slug", slug)
			return "", apperror.New(
				apperror.CodeInternalError,
				apperror.BusinessCodeGeneral,
				"failed to validate slug",
				http.StatusInternalServerError,
			)
		}

		if !exists {
			return slug, nil
		}

		// Try with a suffix
		slug = validator.MakeSlugUniqueWithMaxLength(baseSlug, suffix, domain.MaxSlugLength)
		suffix++

		// Prevent infinite loop
		if suffix > 100 {
			return "", ErrSlugAlreadyExists.WithDetails(
				fmt.Sprintf("unable to generate unique slug for: %s", baseSlug),
			)
		}
	}
}

// Event publishing methods

func (s *PostsService) publishPostCreatedEvent(ctx context.Context, post *domain.Post) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostCreatedTopic,
		Payload: events.PostCreatedEvent{
			PostID:     post.ID,
			ActorID:    post.AuthorID,
			Title:      post.Title,
			Slug:       post.Slug,
			OccurredAt: time.Now(),
		},
	})
}

func (s *PostsService) publishPostUpdatedEvent(ctx context.Context, actor authz.Actor, post *domain.Post) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostUpdatedTopic,
		Payload: events.PostUpdatedEvent{
			PostID:     post.ID,
			ActorID:    actor.ID,
			Title:      post.Title,
			Slug:       post.Slug,
			OccurredAt: time.Now(),
		},
	})
}

func (s *PostsService) publishPostDeletedEvent(ctx context.Context, actor authz.Actor, post *domain.Post) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostDeletedTopic,
		Payload: events.PostDeletedEvent{
			PostID:     post.ID,
			ActorID:    actor.ID,
			OccurredAt: time.Now(),
		},
	})
}

func (s *PostsService) publishPostLikedEvent(ctx context.Context, actor authz.Actor, postID uuid.UUID) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostLikedTopic,
		Payload: events.PostLikedEvent{
			PostID:     postID,
			ActorID:    actor.ID,
			OccurredAt: time.Now(),
		},
	})
}
