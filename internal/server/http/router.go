package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(allowAllOrigins())

	r.Get("/", h.handleRoot)
	r.Get("/api/hello", h.handleHello)
	r.Get("/test", h.handleStoreDiagnostic)

	r.Post("/auth/login", h.handleLogin)
	r.Get("/me", h.handleMe)
	r.Post("/coins/add", h.handleAddCoins)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	return r
}
