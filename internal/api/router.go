package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/dagaz/internal/report"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, ctrl *report.Controller, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, ctrl)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Dashboard surfaces.
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/dashboard/refresh", h.RefreshDashboard)
	r.Post("/dashboard/activate", h.Activate)

	// Note reads.
	r.Get("/notes/*", h.GetNote)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
