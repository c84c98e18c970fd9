package conversation

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

type ConversationUsecase interface {
	ListConversations(ctx context.Context, userEmail string) ([]*entity.Conversation, error)
	GetConversation(ctx context.Context, userEmail, id string) (*entity.Conversation, error)
}
