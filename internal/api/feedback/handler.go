package feedback

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
	usecase   FeedbackUsecase
	validator *validator.Validator
}

func NewHandler(usecase FeedbackUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Submit handles POST /api/feedback - Archive the session and store the survey
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitFeedback")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	var req entity.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitFeedback(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	conversation, err := h.usecase.Submit(ctx, user.Email, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "feedback accepted", zap.String("conversation_id", conversation.ID))

	h.respondJSON(w, http.StatusCreated, entity.SubmitFeedbackResponse{
		ConversationID: conversation.ID,
	})
}

// Options handles GET /api/feedback/options - Survey answer option sets
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, entity.FeedbackOptions{
		Match:        entity.MatchOptions(),
		AnswerLength: entity.AnswerLengthOptions(),
	})
}

// Preferences handles GET /api/preferences - Per-persona conversation counters
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListPreferences")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	preferences, err := h.usecase.ListPreferences(ctx, user.Email)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": preferences,
	})
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
		Error:   message,
		Details: err.Error(),
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrNoActiveSession) {
		h.respondError(ctx, w, http.StatusNotFound, "no active session", err)
	} else if errors.Is(err, entity.ErrFeedbackIncomplete) || errors.Is(err, entity.ErrUnknownCategory) ||
		errors.Is(err, entity.ErrIncompletePersona) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
