package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/phrazzld/tasktrack-api/internal/api/middleware"
)

// RouterConfig carries the handlers and middleware the router wires up.
type RouterConfig struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	TaskHandler    *TaskHandler
	AuthMiddleware *apimiddleware.AuthMiddleware
}

// NewRouter creates and configures the application router with all routes
// and middleware. Authentication endpoints are public; task and user
// endpoints require a valid bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	// Authentication endpoints (public)
	r.Post("/auth/register", cfg.AuthHandler.Register)
	r.Post("/auth/login", cfg.AuthHandler.Login)
	r.Post("/auth/refresh", cfg.AuthHandler.RefreshToken)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware.Authenticate)

		r.Get("/users/me", cfg.UserHandler.Me)
		r.Delete("/users/me", cfg.UserHandler.DeleteMe)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", cfg.TaskHandler.CreateTask)
			r.Get("/", cfg.TaskHandler.ListTasks)
			r.Get("/{id}", cfg.TaskHandler.GetTask)
			r.Patch("/{id}", cfg.TaskHandler.UpdateTask)
			r.Delete("/{id}", cfg.TaskHandler.DeleteTask)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
