package repository

import (
	"context"
	"sync"

	"github.com/personalab/chat-backend/internal/entity"
)

var _ SessionStateRepository = &SessionStateMemory{}

// SessionStateMemory is the in-memory SessionStateRepository used with
// ENABLE_MOCKS and in tests.
type SessionStateMemory struct {
	mu       sync.RWMutex
	sessions map[string]entity.ChatSession
}

func NewSessionStateMemory() *SessionStateMemory {
	return &SessionStateMemory{
		sessions: make(map[string]entity.ChatSession),
	}
}

func (r *SessionStateMemory) Save(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.Turns = make([]entity.Turn, len(session.Turns))
	copy(stored.Turns, session.Turns)
	r.sessions[session.UserEmail] = stored

	return nil
}

func (r *SessionStateMemory) Load(ctx context.Context, userEmail string) (*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.sessions[userEmail]
	if !ok {
		return nil, nil
	}

	session := stored
	session.Turns = make([]entity.Turn, len(stored.Turns))
	copy(session.Turns, stored.Turns)

	return &session, nil
}

func (r *SessionStateMemory) Clear(ctx context.Context, userEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userEmail)
	return nil
}
