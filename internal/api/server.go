package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	authapi "github.com/personalab/chat-backend/internal/api/auth"
	chatapi "github.com/personalab/chat-backend/internal/api/chat"
	conversationapi "github.com/personalab/chat-backend/internal/api/conversation"
	"github.com/personalab/chat-backend/internal/api/docs"
	feedbackapi "github.com/personalab/chat-backend/internal/api/feedback"
	"github.com/personalab/chat-backend/internal/api/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	authHandler *authapi.Handler,
	chatHandler *chatapi.Handler,
	feedbackHandler *feedbackapi.Handler,
	conversationHandler *conversationapi.Handler,
	authMW func(next http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	authapi.RegisterRoutes(r, authHandler, authMW)
	chatapi.RegisterRoutes(r, chatHandler, authMW)
	feedbackapi.RegisterRoutes(r, feedbackHandler, authMW)
	conversationapi.RegisterRoutes(r, conversationHandler, authMW)

	return r
}
