package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/api/middleware"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/pkg/logger"
	"github.com/personalab/chat-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   AuthUsecase
	validator *validator.Validator
}

func NewHandler(usecase AuthUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// SignUp handles POST /api/auth/signup - Register a new account
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignUp")

	var req entity.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSignUp(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, entity.AuthResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// SignIn handles POST /api/auth/signin - Exchange credentials for a token
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignIn")

	var req entity.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSignIn(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.AuthResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// SignOut handles POST /api/auth/signout - Revoke the current token
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignOut")

	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	if err := h.usecase.SignOut(ctx, token); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "signed out",
	})
}

// Me handles GET /api/auth/me - Return the current user
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Details: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrNotAuthenticated) {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", err)
	} else if errors.Is(err, entity.ErrInvalidCredentials) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid credentials", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
