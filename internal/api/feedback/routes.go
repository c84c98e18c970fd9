package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers feedback and preference routes
func RegisterRoutes(r chi.Router, h *Handler, authMW func(next http.Handler) http.Handler) {
	r.Get("/api/feedback/options", h.Options)

	r.Group(func(r chi.Router) {
		r.Use(authMW)
		r.Post("/api/feedback", h.Submit)
		r.Get("/api/preferences", h.Preferences)
	})
}
