package chat

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

type InferenceConnector interface {
	Complete(ctx context.Context, systemInstruction string, turns []entity.Turn) (string, error)
}
