package inference

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector echoes the last user turn. Used when ENABLE_MOCKS is
// set so the whole flow runs without an inference endpoint.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, systemInstruction string, turns []entity.Turn) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating chat completion", zap.Int("turn_count", len(turns)))

	var lastUser string
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == entity.RoleUser {
			lastUser = turns[i].Content
			break
		}
	}

	if lastUser == "" {
		return "Hello! This is a mock reply.", nil
	}

	return fmt.Sprintf("Mock reply to: %s", lastUser), nil
}
