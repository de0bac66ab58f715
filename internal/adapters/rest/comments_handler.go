package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xoaadil/blogy/internal/comments/application"
)

type CommentsHandler struct {
	*BaseHandler
	service *application.CommentsService
}

func NewCommentsHandler(base *BaseHandler, service *application.CommentsService) *CommentsHandler {
	return &CommentsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateComment adds a comment to a post
func (h *CommentsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), actor, postID, req.Content)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToResponse(comment), http.StatusCreated)
}

// ListComments returns all comments on a post, oldest first
func (h *CommentsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.ParseUUID(w, r, chi.URLParam(r, "postID"), "postID")
	if !ok {
		return
	}

	comments, err := h.service.ListCommentsForPost(r.Context(), postID)
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

// UpdateComment edits a comment owned by the actor (or any comment for admins)
func (h *CommentsHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	commentID, ok := h.ParseUUID(w, r, chi.URLParam(r, "commentID"), "commentID")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), actor, commentID, req.Content)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToResponse(comment), http.StatusOK)
}

// DeleteComment removes a comment owned by the actor (or any comment for admins)
func (h *CommentsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.RequireActor(w, r)
	if !ok {
		return
	}

	commentID, ok := h.ParseUUID(w, r, chi.URLParam(r, "commentID"), "commentID")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), actor, commentID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, nil, http.StatusNoContent)
}
