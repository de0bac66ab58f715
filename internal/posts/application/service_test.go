package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/eventbus"
	"github.com/xoaadil/blogy/internal/platform/postgres"
	"github.com/xoaadil/blogy/internal/posts/application"
	"github.com/xoaadil/blogy/internal/posts/domain"
	"github.com/xoaadil/blogy/internal/posts/ports"
)

// nopLogger implements the logger.Logger interface for testing
type nopLogger struct{}

func (n *nopLogger) Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {}
func (n *nopLogger) Info(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (n *nopLogger) Warn(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (n *nopLogger) Error(ctx context.Context, msg string, keysAndValues ...interface{}) {}

// fakeTransaction satisfies the Transaction interface without a database
type fakeTransaction struct{}

func (t *fakeTransaction) Commit(ctx context.Context) error   { return nil }
func (t *fakeTransaction) Rollback(ctx context.Context) error { return nil }
func (t *fakeTransaction) Tx() pgx.Tx                         { return nil }

// fakeTxManager hands out no-op transactions
type fakeTxManager struct{}

func (m *fakeTxManager) BeginTx(ctx context.Context) (postgres.Transaction, error) {
	return &fakeTransaction{}, nil
}

// fakePostRepository is an in-memory PostRepository
type fakePostRepository struct {
	mu            sync.Mutex
	posts         map[uuid.UUID]*domain.Post
	likes         map[uuid.UUID]map[uuid.UUID]bool
	toggleLikeErr error
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{
		posts: make(map[uuid.UUID]*domain.Post),
		likes: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakePostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrPostNotFound
	}
	copied := *post
	copied.LikedBy = r.likersLocked(id)
	return &copied, nil
}

func (r *fakePostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, post := range r.posts {
		if post.Slug == slug {
			copied := *post
			copied.LikedBy = r.likersLocked(id)
			return &copied, nil
		}
	}
	return nil, ports.ErrPostNotFound
}

func (r *fakePostRepository) Update(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return ports.ErrPostNotFound
	}
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ports.ErrPostNotFound
	}
	delete(r.posts, id)
	delete(r.likes, id)
	return nil
}

func (r *fakePostRepository) ListSummaries(ctx context.Context, filter ports.ListFilter) ([]*ports.PostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summaries []*ports.PostSummary
	for id, post := range r.posts {
		if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
			continue
		}
		summaries = append(summaries, &ports.PostSummary{
			ID:        post.ID,
			Title:     post.Title,
			Slug:      post.Slug,
			AuthorID:  post.AuthorID,
			LikeCount: len(r.likes[id]),
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
		})
	}
	return summaries, nil
}

func (r *fakePostRepository) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	summaries, _ := r.ListSummaries(ctx, filter)
	return len(summaries), nil
}

func (r *fakePostRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, post := range r.posts {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if post.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toggleLikeErr != nil {
		return false, r.toggleLikeErr
	}
	if r.likes[postID] == nil {
		r.likes[postID] = make(map[uuid.UUID]bool)
	}
	if r.likes[postID][userID] {
		delete(r.likes[postID], userID)
		return false, nil
	}
	r.likes[postID][userID] = true
	return true, nil
}

func (r *fakePostRepository) ListLikers(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likersLocked(postID), nil
}

func (r *fakePostRepository) likersLocked(postID uuid.UUID) []uuid.UUID {
	likers := []uuid.UUID{}
	for userID := range r.likes[postID] {
		likers = append(likers, userID)
	}
	return likers
}

func (r *fakePostRepository) GetPostAuthor(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return uuid.Nil, ports.ErrPostNotFound
	}
	return post.AuthorID, nil
}

func (r *fakePostRepository) WithTx(tx pgx.Tx) ports.PostRepository {
	return r
}

var _ ports.PostRepository = (*fakePostRepository)(nil)

func newTestService() (*application.PostsService, *fakePostRepository) {
	repo := newFakePostRepository()
	bus := eventbus.NewBus(&nopLogger{})
	svc := application.NewPostsService(repo, &fakeTxManager{}, bus, &nopLogger{})
	return svc, repo
}

func userActor() authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleUser}
}

func adminActor() authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
}

func createPost(t *testing.T, svc *application.PostsService, actor authz.Actor) *domain.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), actor, application.CreatePostParams{
		Title:   "A Perfectly Fine Title",
		Content: "Some perfectly fine content.",
	})
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	svc, repo := newTestService()
	actor := userActor()

	post := createPost(t, svc, actor)

	assert.Equal(t, actor.ID, post.AuthorID)
	assert.Equal(t, "a-perfectly-fine-title", post.Slug)

	stored, err := repo.FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, stored.Title)
}

func TestCreatePost_InvalidData(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), userActor(), application.CreatePostParams{
		Title:   "ab",
		Content: "Some perfectly fine content.",
	})
	assert.ErrorIs(t, err, application.ErrInvalidPostData)
}

func TestCreatePost_DuplicateTitleGetsSuffixedSlug(t *testing.T) {
	svc, _ := newTestService()
	actor := userActor()

	first := createPost(t, svc, actor)
	second := createPost(t, svc, actor)

	assert.Equal(t, "a-perfectly-fine-title", first.Slug)
	assert.Equal(t, "a-perfectly-fine-title-1", second.Slug)
}

func TestUpdatePost_Owner(t *testing.T) {
	svc, _ := newTestService()
	actor := userActor()
	post := createPost(t, svc, actor)

	updated, err := svc.UpdatePost(context.Background(), actor, post.ID, application.UpdatePostParams{
		Title:   "A Brand New Title",
		Content: "Brand new content.",
	})
	require.NoError(t, err)
	assert.Equal(t, "A Brand New Title", updated.Title)
	assert.Equal(t, "a-brand-new-title", updated.Slug)
	assert.Equal(t, actor.ID, updated.AuthorID)
}

func TestUpdatePost_Admin(t *testing.T) {
	svc, _ := newTestService()
	owner := userActor()
	post := createPost(t, svc, owner)

	updated, err := svc.UpdatePost(context.Background(), adminActor(), post.ID, application.UpdatePostParams{
		Title:   "Moderated Title",
		Content: "Moderated content.",
	})
	require.NoError(t, err)
	// Moderation edits never transfer authorship
	assert.Equal(t, owner.ID, updated.AuthorID)
}

func TestUpdatePost_Stranger(t *testing.T) {
	svc, _ := newTestService()
	post := createPost(t, svc, userActor())

	_, err := svc.UpdatePost(context.Background(), userActor(), post.ID, application.UpdatePostParams{
		Title:   "Hijacked Title",
		Content: "Hijacked content.",
	})
	assert.ErrorIs(t, err, application.ErrNotPostOwner)

	// The post is untouched after the denial
	stored, getErr := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "A Perfectly Fine Title", stored.Title)
}

func TestUpdatePost_MissingIsNotFoundNotForbidden(t *testing.T) {
	svc, _ := newTestService()

	// Even a stranger gets not found for a missing post, not forbidden
	_, err := svc.UpdatePost(context.Background(), userActor(), uuid.New(), application.UpdatePostParams{
		Title:   "Whatever Title",
		Content: "Whatever content.",
	})
	assert.ErrorIs(t, err, application.ErrPostNotFound)
	assert.NotErrorIs(t, err, application.ErrNotPostOwner)
}

func TestDeletePost_Owner(t *testing.T) {
	svc, _ := newTestService()
	actor := userActor()
	post := createPost(t, svc, actor)

	err := svc.DeletePost(context.Background(), actor, post.ID)
	require.NoError(t, err)

	_, err = svc.GetPost(context.Background(), post.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)
}

func TestDeletePost_Stranger(t *testing.T) {
	svc, _ := newTestService()
	post := createPost(t, svc, userActor())

	err := svc.DeletePost(context.Background(), userActor(), post.ID)
	assert.ErrorIs(t, err, application.ErrNotPostOwner)

	// Denied deletion leaves the post in place
	_, err = svc.GetPost(context.Background(), post.ID)
	assert.NoError(t, err)
}

func TestDeletePost_IsTerminal(t *testing.T) {
	svc, _ := newTestService()
	actor := userActor()
	post := createPost(t, svc, actor)

	require.NoError(t, svc.DeletePost(context.Background(), actor, post.ID))

	// Every subsequent operation on the deleted id reports not found,
	// including for the former owner and for admins
	err := svc.DeletePost(context.Background(), actor, post.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	_, err = svc.UpdatePost(context.Background(), adminActor(), post.ID, application.UpdatePostParams{
		Title:   "Too Late Title",
		Content: "Too late content.",
	})
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	_, err = svc.ToggleLike(context.Background(), actor, post.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)
}

func TestToggleLike(t *testing.T) {
	svc, _ := newTestService()
	author := userActor()
	liker := userActor()
	post := createPost(t, svc, author)

	result, err := svc.ToggleLike(context.Background(), liker, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)
	assert.Contains(t, result.LikedBy, liker.ID)

	// A second toggle by the same user undoes the first
	result, err = svc.ToggleLike(context.Background(), liker, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)
	assert.NotContains(t, result.LikedBy, liker.ID)
}

func TestToggleLike_OwnPost(t *testing.T) {
	svc, _ := newTestService()
	author := userActor()
	post := createPost(t, svc, author)

	result, err := svc.ToggleLike(context.Background(), author, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
}

func TestToggleLike_CountMatchesMembership(t *testing.T) {
	svc, _ := newTestService()
	post := createPost(t, svc, userActor())

	likers := []authz.Actor{userActor(), userActor(), userActor()}
	for _, liker := range likers {
		_, err := svc.ToggleLike(context.Background(), liker, post.ID)
		require.NoError(t, err)
	}

	loaded, err := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, len(loaded.LikedBy), loaded.LikeCount())
	for _, liker := range likers {
		assert.True(t, loaded.IsLikedBy(liker.ID))
	}
}

func TestToggleLike_MissingPost(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ToggleLike(context.Background(), userActor(), uuid.New())
	assert.ErrorIs(t, err, application.ErrPostNotFound)
}

func TestToggleLike_PostDeletedDuringToggle(t *testing.T) {
	svc, repo := newTestService()
	post := createPost(t, svc, userActor())

	// The post passes the existence check but is gone by the time the
	// membership row is written, as with a concurrent delete
	repo.toggleLikeErr = ports.ErrPostNotFound

	_, err := svc.ToggleLike(context.Background(), userActor(), post.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)
	assert.NotErrorIs(t, err, application.ErrNotPostOwner)
}

func TestGetPostBySlug(t *testing.T) {
	svc, _ := newTestService()
	post := createPost(t, svc, userActor())

	found, err := svc.GetPostBySlug(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	_, err = svc.GetPostBySlug(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, application.ErrPostNotFound)
}

func TestListPosts_FilterByAuthor(t *testing.T) {
	svc, _ := newTestService()
	alice := userActor()
	bob := userActor()

	createPost(t, svc, alice)
	createPost(t, svc, alice)
	createPost(t, svc, bob)

	filter := ports.DefaultListFilter()
	filter.AuthorID = &alice.ID

	summaries, total, err := svc.ListPosts(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, summaries, 2)
	for _, summary := range summaries {
		assert.Equal(t, alice.ID, summary.AuthorID)
	}
}
