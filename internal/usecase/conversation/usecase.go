package conversation

import (
	"context"
	"fmt"

	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/repository"
	"go.uber.org/zap"
)

// ConversationUsecase serves the archived conversation history.
type ConversationUsecase struct {
	conversationRepo repository.ConversationRepository
	logger           *zap.Logger
}

// NewUsecase creates a new conversation use case
func NewUsecase(conversationRepo repository.ConversationRepository, logger *zap.Logger) *ConversationUsecase {
	return &ConversationUsecase{
		conversationRepo: conversationRepo,
		logger:           logger,
	}
}

// ListConversations returns the user's archived conversations, newest
// first.
func (uc *ConversationUsecase) ListConversations(ctx context.Context, userEmail string) ([]*entity.Conversation, error) {
	conversations, err := uc.conversationRepo.ListConversationsByUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, nil
}

// GetConversation returns one archived conversation. Conversations of
// other users are reported as missing, not as forbidden.
func (uc *ConversationUsecase) GetConversation(ctx context.Context, userEmail, id string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetConversationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if conversation.UserEmail != userEmail {
		return nil, entity.ErrConversationNotFound
	}

	return conversation, nil
}
