package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/xoaadil/blogy/internal/adapters/rest"
	"github.com/xoaadil/blogy/internal/adapters/rest/middleware"
	"github.com/xoaadil/blogy/internal/platform/logger"
)

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(
	config Config,
	authHandler *rest.AuthHandler,
	postsHandler *rest.PostsHandler,
	commentsHandler *rest.CommentsHandler,
	usersHandler *rest.UsersHandler,
	healthHandler *rest.HealthHandler,
	authenticator *middleware.Authenticator,
	log logger.Logger,
) *http.Server {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", healthHandler.GetLiveness)
		r.Get("/health/ready", healthHandler.GetReadiness)

		// Public endpoints
		r.Group(func(r chi.Router) {
			r.Post("/auth/signup", authHandler.Signup)
			r.Post("/auth/login", authHandler.Login)

			r.Get("/posts", postsHandler.ListPosts)
			r.Get("/posts/{postID}", postsHandler.GetPost)
			r.Get("/posts/slug/{slug}", postsHandler.GetPostBySlug)
			r.Get("/posts/{postID}/comments", commentsHandler.ListComments)

			r.Get("/users/{userID}", usersHandler.GetProfile)
			r.Get("/users/{userID}/posts", usersHandler.ListUserPosts)
			r.Get("/users/{userID}/comments", usersHandler.ListUserComments)
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticator.Middleware)

			r.Get("/me", usersHandler.GetCurrentUser)

			r.Post("/posts", postsHandler.CreatePost)
			r.Put("/posts/{postID}", postsHandler.UpdatePost)
			r.Delete("/posts/{postID}", postsHandler.DeletePost)
			r.Post("/posts/{postID}/like", postsHandler.ToggleLike)

			r.Post("/posts/{postID}/comments", commentsHandler.CreateComment)
			r.Put("/comments/{commentID}", commentsHandler.UpdateComment)
			r.Delete("/comments/{commentID}", commentsHandler.DeleteComment)
		})
	})

	// Wrap with observability middleware
	handler := withObservability(r, log)

	// Create and return HTTP server
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withObservability adds request logging and metrics
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		// The auth middleware runs on a derived request context, so an
		// actor recorder is the only way this wrapper can see who the
		// request authenticated as
		ctx := middleware.WithActorRecorder(r.Context())
		r = r.WithContext(ctx)

		// Process the request
		handler.ServeHTTP(wrr, r)

		// Log request details
		duration := time.Since(start)

		// Extract the acting user if available for better tracing
		var userID string
		if actor, ok := middleware.RecordedActor(ctx); ok {
			userID = actor.ID.String()
		}

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"user_id", userID,
		)
	})
}
