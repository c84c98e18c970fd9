package repository

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

// SessionStateRepository is the durable store for the single
// in-progress chat session of a user: the persona/purpose selection
// and the full transcript snapshot. Save overwrites the whole prior
// snapshot; there is no incremental persistence. Load returns nil when
// no session is stored.
type SessionStateRepository interface {
	Save(ctx context.Context, session *entity.ChatSession) error
	Load(ctx context.Context, userEmail string) (*entity.ChatSession, error)
	Clear(ctx context.Context, userEmail string) error
}
