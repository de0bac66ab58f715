package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/xoaadil/blogy/internal/adapters/rest/middleware"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/apperror"
	"github.com/xoaadil/blogy/internal/platform/logger"
)

// errorResponse is the JSON error envelope shared by all handlers
type errorResponse struct {
	Error        string      `json:"error"`
	BusinessCode string      `json:"business_code,omitempty"`
	Message      string      `json:"message"`
	Context      interface{} `json:"context,omitempty"`
}

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{
		Error:   code,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", code,
			"status_code", statusCode,
		)
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps an application error to the JSON error envelope.
// AppError values carry their own HTTP status and codes; anything
// else is reported as an internal server error without leaking the
// underlying message.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.HTTPStatus)

		resp := errorResponse{
			Error:        string(appErr.Code),
			BusinessCode: string(appErr.BusinessCode),
			Message:      appErr.Message,
			Context:      appErr.Details,
		}

		if appErr.HTTPStatus >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "request failed",
				"error", err,
				"error_code", appErr.Code,
				"business_code", appErr.BusinessCode,
			)
		}

		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			h.logger.Error(r.Context(), "failed to encode error response", "error", encErr)
		}
		return
	}

	h.logger.Error(r.Context(), "unhandled error", "error", err)
	h.WriteJSONError(w, r, string(apperror.CodeInternalError), "An unexpected error occurred", http.StatusInternalServerError)
}

// ParseUUID parses a path or query parameter as a UUID, writing a 400
// response and returning false when the value is not valid
func (h *BaseHandler) ParseUUID(w http.ResponseWriter, r *http.Request, value string, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.WriteJSONError(w, r, "invalid_request", "Invalid "+paramName, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// RequireActor extracts the authenticated actor from the request context.
// Handlers registered behind the authentication middleware should always
// find one; a missing actor means the route was wired wrong, so the
// request is rejected as unauthenticated.
func (h *BaseHandler) RequireActor(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.WriteJSONError(w, r, string(apperror.CodeUnauthenticated), "Authentication required", http.StatusUnauthorized)
		return authz.Actor{}, false
	}
	return actor, true
}
