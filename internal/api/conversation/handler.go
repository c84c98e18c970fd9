package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/api/middleware"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/pkg/formatter"
	"github.com/personalab/chat-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ConversationUsecase
}

func NewHandler(usecase ConversationUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// List handles GET /api/conversations - Archived conversations of the user
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListConversations")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	conversations, err := h.usecase.ListConversations(ctx, user.Email)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": conversations,
	})
}

// Export handles GET /api/conversations/{id}/export - Download a transcript
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "ExportConversation"),
	)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", entity.ErrNotAuthenticated)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = "markdown"
	}

	format := entity.ExportFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("format must be one of: markdown, json, pdf"))
		return
	}

	conversation, err := h.usecase.GetConversation(ctx, user.Email, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	transcript, err := fmtr.Format(conversation)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format transcript", err)
		return
	}

	ctxzap.Info(ctx, "conversation exported", zap.String("format", string(format)))
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transcript-%s%s\"", conversationID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(transcript)
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
	if errors.Is(err, entity.ErrConversationNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "conversation not found", err)
	} else if errors.Is(err, entity.ErrInvalidFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
