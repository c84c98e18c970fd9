package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/personalab/chat-backend/internal/entity"
)

// ConversationRepository defines the interface for immutable
// conversation records
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error)
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListConversationsByUser(ctx context.Context, userEmail string) ([]*entity.Conversation, error)
}

var _ ConversationRepository = &ConversationPostgres{}

// ConversationPostgres implements ConversationRepository using PostgreSQL
type ConversationPostgres struct {
	db *pgxpool.Pool
}

func NewConversationPostgres(db *pgxpool.Pool) *ConversationPostgres {
	return &ConversationPostgres{db: db}
}

// CreateConversation inserts the full transcript with its persona and
// purpose and returns the generated conversation id.
func (r *ConversationPostgres) CreateConversation(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error) {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return nil, fmt.Errorf("marshal messages: %w", err)
	}

	created := *conv
	err = r.db.QueryRow(ctx, `
		INSERT INTO conversations (user_email, persona, purpose, messages)
		VALUES ($1, $2, $3, $4)
		RETURNING conversation_id, created_at`,
		conv.UserEmail, conv.Persona, conv.Purpose, messages,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	return &created, nil
}

func (r *ConversationPostgres) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var (
		conv     entity.Conversation
		messages []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT conversation_id, user_email, persona, purpose, messages, created_at
		FROM conversations
		WHERE conversation_id = $1`,
		id,
	).Scan(&conv.ID, &conv.UserEmail, &conv.Persona, &conv.Purpose, &messages, &conv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if err := json.Unmarshal(messages, &conv.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}

	return &conv, nil
}

func (r *ConversationPostgres) ListConversationsByUser(ctx context.Context, userEmail string) ([]*entity.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT conversation_id, user_email, persona, purpose, messages, created_at
		FROM conversations
		WHERE user_email = $1
		ORDER BY created_at DESC`,
		userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*entity.Conversation
	for rows.Next() {
		var (
			conv     entity.Conversation
			messages []byte
		)
		if err := rows.Scan(&conv.ID, &conv.UserEmail, &conv.Persona, &conv.Purpose, &messages, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if err := json.Unmarshal(messages, &conv.Messages); err != nil {
			return nil, fmt.Errorf("unmarshal messages: %w", err)
		}
		conversations = append(conversations, &conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	return conversations, nil
}
