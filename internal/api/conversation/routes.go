package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation history routes
func RegisterRoutes(r chi.Router, h *Handler, authMW func(next http.Handler) http.Handler) {
	r.Route("/api/conversations", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", h.List)
		r.Get("/{id}/export", h.Export)
	})
}
