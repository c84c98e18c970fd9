package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat and catalog routes
func RegisterRoutes(r chi.Router, h *Handler, authMW func(next http.Handler) http.Handler) {
	r.Post("/api/chat", h.Chat)

	r.Route("/api/chat/session", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/", h.StartSession)
		r.Get("/", h.GetSession)
		r.Post("/message", h.SendMessage)
	})

	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/personas", h.Personas)
		r.Get("/purposes", h.Purposes)
	})
}
