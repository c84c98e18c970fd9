package chat

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

type ChatUsecase interface {
	StartSession(ctx context.Context, userEmail, personaKey, purposeID string) (*entity.ChatSession, error)
	GetSession(ctx context.Context, userEmail string) (*entity.ChatSession, error)
	SendMessage(ctx context.Context, userEmail, content string) (*entity.ChatSession, error)
	Complete(ctx context.Context, messages []entity.Turn, personaKey, purposeID string) (string, error)
}
