package chat

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
	pkghttp "github.com/personalab/chat-backend/pkg/http"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/chat - Stateless completion for a supplied transcript
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateChatRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "processing chat request",
		zap.Int("messages", len(req.Messages)),
		zap.String("persona", req.Persona),
		zap.String("purpose", req.Purpose),
	)

	reply, err := h.usecase.Complete(ctx, req.Messages, req.Persona, req.Purpose)
	if err != nil {
		var netErr *pkghttp.NetworkError
		var httpErr *pkghttp.HTTPError
		if errors.As(err, &netErr) || errors.As(err, &httpErr) {
			h.respondError(ctx, w, http.StatusServiceUnavailable, "inference service unavailable", err)
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to process chat request", err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.ChatResponse{Message: reply})
}

// StartSession handles POST /api/chat/session - Start a session for the selected persona and purpose
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	var req entity.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartSession(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.StartSession(ctx, user.Email, req.Persona, req.Purpose)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toSessionDTO(session))
}

// GetSession handles GET /api/chat/session - Restore the in-progress session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	session, err := h.usecase.GetSession(ctx, user.Email)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionDTO(session))
}

// SendMessage handles POST /api/chat/session/message - Send a user turn
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SendMessage")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	var req entity.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSendMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.SendMessage(ctx, user.Email, req.Content)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionDTO(session))
}

// Personas handles GET /api/catalog/personas - Selectable tones and approaches
func (h *Handler) Personas(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]entity.CategoryOption{
		"tones":      entity.ToneOptions(),
		"approaches": entity.ApproachOptions(),
	})
}

// Purposes handles GET /api/catalog/purposes - Selectable conversation purposes
func (h *Handler) Purposes(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]entity.CategoryOption{
		"purposes": entity.PurposeOptions(),
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
	} else if errors.Is(err, entity.ErrEmptyMessage) || errors.Is(err, entity.ErrMissingField) ||
		errors.Is(err, entity.ErrUnknownCategory) || errors.Is(err, entity.ErrIncompletePersona) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrRequestInFlight) {
		h.respondError(ctx, w, http.StatusConflict, "a reply is already being generated", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
