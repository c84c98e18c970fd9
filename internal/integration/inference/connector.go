package inference

import (
	"context"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/config"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/integration/common"
	pkghttp "github.com/personalab/chat-backend/pkg/http"
	"go.uber.org/zap"
)

// emptyReply is returned when the upstream answers successfully but
// produces no completion choice. That case is not an error.
const emptyReply = "No response generated"

type Connector struct {
	config    config.InferenceConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.InferenceConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends the system instruction plus the transcript to the
// chat-completion endpoint and returns the trimmed reply text. Any
// pre-existing system-role turns in the transcript are dropped; the
// resolved instruction is always the first message.
func (c *Connector) Complete(ctx context.Context, systemInstruction string, turns []entity.Turn) (string, error) {
	messages := make([]entity.ChatMessage, 0, len(turns)+1)
	messages = append(messages, entity.ChatMessage{
		Role:    string(entity.RoleSystem),
		Content: systemInstruction,
	})
	for _, turn := range turns {
		if turn.Role == entity.RoleSystem {
			continue
		}
		messages = append(messages, entity.ChatMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	var resp entity.ChatCompletionResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "chat completion failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		ctxzap.Warn(ctx, "chat completion returned no choices")
		return emptyReply, nil
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		reply = emptyReply
	}

	ctxzap.Info(ctx, "chat completion received", zap.Int("reply_length", len(reply)))

	return reply, nil
}
