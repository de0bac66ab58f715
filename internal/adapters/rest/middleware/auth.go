package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/xoaadil/blogy/internal/auth"
	"github.com/xoaadil/blogy/internal/authz"
	"github.com/xoaadil/blogy/internal/platform/logger"
)

type contextKey string

// actorKey is the context key under which the authenticated actor is stored
const actorKey contextKey = "actor"

// recorderKey is the context key for the actor recorder installed by
// outer observability wrappers
const recorderKey contextKey = "actorRecorder"

// actorRecorder is a mutable slot shared between an outer wrapper and
// the authentication middleware. The middleware derives a new request
// context for the inner handler, so a wrapper holding the outer context
// can only observe the actor through this slot.
type actorRecorder struct {
	actor authz.Actor
	ok    bool
}

// WithActorRecorder installs an actor recorder in ctx. Wrappers that
// run outside the authentication middleware use it to learn which
// actor a request resolved to after the inner handler returns.
func WithActorRecorder(ctx context.Context) context.Context {
	return context.WithValue(ctx, recorderKey, &actorRecorder{})
}

// RecordedActor reads the actor captured by the recorder, if any
func RecordedActor(ctx context.Context) (authz.Actor, bool) {
	rec, ok := ctx.Value(recorderKey).(*actorRecorder)
	if !ok || !rec.ok {
		return authz.Actor{}, false
	}
	return rec.actor, true
}

// SetActor returns a copy of ctx carrying the authenticated actor.
// If an actor recorder is present it is filled in as well.
func SetActor(ctx context.Context, actor authz.Actor) context.Context {
	if rec, ok := ctx.Value(recorderKey).(*actorRecorder); ok {
		rec.actor = actor
		rec.ok = true
	}
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor extracts the authenticated actor from the context
func GetActor(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(authz.Actor)
	return actor, ok
}

// ActorResolver turns a bearer token into an authenticated actor
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (authz.Actor, error)
}

// Authenticator verifies bearer tokens and attaches the resulting
// actor to the request context
type Authenticator struct {
	resolver ActorResolver
	logger   logger.Logger
}

// NewAuthenticator creates the authentication middleware
func NewAuthenticator(resolver ActorResolver, logger logger.Logger) *Authenticator {
	return &Authenticator{
		resolver: resolver,
		logger:   logger,
	}
}

// Middleware rejects requests without a valid bearer token. The actor's
// role is resolved from storage on every request, so a revoked or
// demoted account takes effect immediately rather than at token expiry.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			WriteJSONError(w, ErrorCodeUnauthorized, "Authorization header missing or malformed", http.StatusUnauthorized)
			return
		}

		actor, err := a.resolver.ResolveActor(r.Context(), token)
		if err != nil {
			a.writeResolveError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetActor(r.Context(), actor)))
	})
}

func (a *Authenticator) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		WriteJSONError(w, ErrorCodeTokenExpired, "Token has expired", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingSubject):
		WriteJSONError(w, ErrorCodeInvalidToken, "Token is invalid", http.StatusUnauthorized)
	default:
		a.logger.Error(r.Context(), "failed to resolve actor", "error", err)
		WriteJSONError(w, ErrorCodeInternalServerError, "Failed to authenticate request", http.StatusInternalServerError)
	}
}

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
