package feedback

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

type FeedbackUsecase interface {
	Submit(ctx context.Context, userEmail string, req *entity.SubmitFeedbackRequest) (*entity.Conversation, error)
	ListPreferences(ctx context.Context, userEmail string) ([]*entity.PreferenceAggregate, error)
}
