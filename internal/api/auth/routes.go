package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers auth routes
func RegisterRoutes(r chi.Router, h *Handler, authMW func(next http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Post("/signout", h.SignOut)
			r.Get("/me", h.Me)
		})
	})
}
