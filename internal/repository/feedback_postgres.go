package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/personalab/chat-backend/internal/entity"
)

// FeedbackRepository defines the interface for immutable feedback records
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *entity.Feedback) (*entity.Feedback, error)
}

var _ FeedbackRepository = &FeedbackPostgres{}

// FeedbackPostgres implements FeedbackRepository using PostgreSQL
type FeedbackPostgres struct {
	db *pgxpool.Pool
}

func NewFeedbackPostgres(db *pgxpool.Pool) *FeedbackPostgres {
	return &FeedbackPostgres{db: db}
}

func (r *FeedbackPostgres) CreateFeedback(ctx context.Context, fb *entity.Feedback) (*entity.Feedback, error) {
	created := *fb
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (conversation_id, user_email, persona_match, communication_style, feedback_approach, answer_length, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		fb.ConversationID, fb.UserEmail, fb.PersonaMatch, fb.CommunicationStyle,
		fb.FeedbackApproach, fb.AnswerLength, fb.Comments,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	return &created, nil
}
