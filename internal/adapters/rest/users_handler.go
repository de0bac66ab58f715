package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	commentsapp "github.com/xoaadil/blogy/internal/comments/application"
	postsapp "github.com/xoaadil/blogy/internal/posts/application"
	postsports "github.com/xoaadil/blogy/internal/posts/ports"
	"github.com/xoaadil/blogy/internal/users/application"
)

type UsersHandler struct {
	*BaseHandler
	users    *application.UsersService
	posts    *postsapp.PostsService
	comments *commentsapp.CommentsService
}

func NewUsersHandler(
	base *BaseHandler,
	users *application.UsersService,
	posts *postsapp.PostsService,
	comments *commentsapp.CommentsService,
) *UsersHandler {
	return &UsersHandler{
		BaseHandler: base,
		users:       users,
		posts:       posts,
		comments:    comments,
	}
}

// GetProfile returns a user's public profile
func (h *UsersHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ParseUUID(w, r, chi.URLParam(r, "userID"), "userID")
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainUserToResponse(user), http.StatusOK)
}

// GetCurrentUser returns the authenticated actor's own profile
func (h *UsersHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), actor.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainUserToResponse(user), http.StatusOK)
}

// ListUserPosts returns the posts authored by a user, newest first
func (h *UsersHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ParseUUID(w, r, chi.URLParam(r, "userID"), "userID")
	if !ok {
		return
	}

	// Profiles resolve before their content so a missing user is
	// reported as such rather than as an empty list
	if _, err := h.users.GetProfile(r.Context(), userID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	filter := postsports.DefaultListFilter()
	filter.AuthorID = &userID

	summaries, total, err := h.posts.ListPosts(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	posts := make([]PostSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		posts = append(posts, postSummaryToResponse(summary))
	}

	h.WriteJSONResponse(w, r, PostListResponse{
		Posts: posts,
		Meta: PaginationMeta{
			Total:  total,
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
	}, http.StatusOK)
}

// ListUserComments returns the comments written by a user, newest first
func (h *UsersHandler) ListUserComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ParseUUID(w, r, chi.URLParam(r, "userID"), "userID")
	if !ok {
		return
	}

	if _, err := h.users.GetProfile(r.Context(), userID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	comments, err := h.comments.ListCommentsByAuthor(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, commentWithAuthorToResponse(comment))
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}
