package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xoaadil/blogy/internal/posts/application"
	"github.com/xoaadil/blogy/internal/posts/ports"
)

type PostsHandler struct {
	*BaseHandler
	service *application.PostsService
}

func NewPostsHandler(base *BaseHandler, service *application.PostsService) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreatePost creates a new post authored by the authenticated actor
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(r.Context(), actor, application.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToResponse(post), http.StatusCreated)
}

// GetPost retrieves a single post by ID
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToResponse(post), http.StatusOK)
}

// GetPostBySlug retrieves a single post by its URL slug
func (h *PostsHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		h.WriteJSONError(w, r, "invalid_request", "Invalid slug", http.StatusBadRequest)
		return
	}

	post, err := h.service.GetPostBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToResponse(post), http.StatusOK)
}

// ListPosts returns a paginated list of post summaries
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseListFilter(w, r)
	if !ok {
		return
	}

	summaries, total, err := h.service.ListPosts(r.Context(), filter)
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

// UpdatePost updates a post owned by the actor (or any post for admins)
func (h *PostsHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), actor, postID, application.UpdatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToResponse(post), http.StatusOK)
}

// DeletePost removes a post owned by the actor (or any post for admins)
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), actor, postID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, nil, http.StatusNoContent)
}

// ToggleLike flips the actor's like on a post
func (h *PostsHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	result, err := h.service.ToggleLike(r.Context(), actor, postID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, LikeResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
		LikedBy:   result.LikedBy,
	}, http.StatusOK)
}

func (h *PostsHandler) parseListFilter(w http.ResponseWriter, r *http.Request) (ports.ListFilter, bool) {
	filter := ports.DefaultListFilter()
	query := r.URL.Query()

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			h.WriteJSONError(w, r, "invalid_request", "Invalid limit", http.StatusBadRequest)
			return filter, false
		}
		filter.Limit = limit
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			h.WriteJSONError(w, r, "invalid_request", "Invalid offset", http.StatusBadRequest)
			return filter, false
		}
		filter.Offset = offset
	}

	if authorStr := query.Get("author"); authorStr != "" {
		authorID, ok := h.ParseUUID(w, r, authorStr, "author")
		if !ok {
			return filter, false
		}
		filter.AuthorID = &authorID
	}

	filter.SearchQuery = query.Get("search")

	switch query.Get("order_by") {
	case "", "created_at":
		filter.OrderBy = ports.OrderByCreatedAt
	case "updated_at":
		filter.OrderBy = ports.OrderByUpdatedAt
	case "title":
		filter.OrderBy = ports.OrderByTitle
	default:
		h.WriteJSONError(w, r, "invalid_request", "Invalid order_by", http.StatusBadRequest)
		return filter, false
	}

	if orderStr := query.Get("order"); orderStr != "" {
		switch orderStr {
		case "asc":
			filter.OrderDesc = false
		case "desc":
			filter.OrderDesc = true
		default:
			h.WriteJSONError(w, r, "invalid_request", "Invalid order", http.StatusBadRequest)
			return filter, false
		}
	}

	return filter, true
}
