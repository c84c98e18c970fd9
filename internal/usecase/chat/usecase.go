package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/prompt"
	"github.com/personalab/chat-backend/internal/repository"
	"go.uber.org/zap"
)

// apologyReply replaces the assistant reply when the inference gateway
// fails, so the transcript never ends on an unanswered user turn.
const apologyReply = "Sorry, I encountered an error. Please try again."

// ChatUsecase implements the conversation session lifecycle
type ChatUsecase struct {
	stateRepo repository.SessionStateRepository
	inference InferenceConnector
	logger    *zap.Logger

	// inFlight tracks users with an outstanding inference call. A new
	// user turn is rejected while one is pending, so transcript order
	// matches send order.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewUsecase creates a new chat use case
func NewUsecase(
	stateRepo repository.SessionStateRepository,
	inference InferenceConnector,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		stateRepo: stateRepo,
		inference: inference,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

// StartSession creates the session for the selected persona and
// purpose, seeded with the authored greeting as the first assistant
// turn, and persists the initial snapshot. Any previous unfinished
// session of the user is overwritten.
func (uc *ChatUsecase) StartSession(ctx context.Context, userEmail, personaKey, purposeID string) (*entity.ChatSession, error) {
	persona := entity.ParsePersonaKey(personaKey)
	if !persona.IsComplete() {
		return nil, fmt.Errorf("%w: %q", entity.ErrIncompletePersona, personaKey)
	}

	purpose := entity.Purpose(purposeID)
	if err := purpose.Validate(); err != nil {
		return nil, err
	}

	session := &entity.ChatSession{
		UserEmail: userEmail,
		Persona:   persona,
		Purpose:   purpose,
		StartedAt: time.Now().UTC(),
		Turns: []entity.Turn{
			{
				ID:      uuid.New().String(),
				Role:    entity.RoleAssistant,
				Content: prompt.Greeting(persona, purpose),
			},
		},
	}

	if err := uc.stateRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "chat session started",
		zap.String("persona", persona.Key()),
		zap.String("purpose", string(purpose)),
	)

	return session, nil
}

// GetSession restores the user's in-progress session.
func (uc *ChatUsecase) GetSession(ctx context.Context, userEmail string) (*entity.ChatSession, error) {
	session, err := uc.stateRepo.Load(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, entity.ErrNoActiveSession
	}

	return session, nil
}

// SendMessage appends the user turn, requests a completion for the
// running transcript and appends the assistant turn. On gateway
// failure the apology turn is appended instead, the user turn stays in
// place and the conversation continues. The full snapshot is persisted
// after every round trip.
func (uc *ChatUsecase) SendMessage(ctx context.Context, userEmail, content string) (*entity.ChatSession, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, entity.ErrEmptyMessage
	}

	if !uc.acquire(userEmail) {
		return nil, entity.ErrRequestInFlight
	}
	defer uc.release(userEmail)

	session, err := uc.stateRepo.Load(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, entity.ErrNoActiveSession
	}

	session.Turns = append(session.Turns, entity.Turn{
		ID:      uuid.New().String(),
		Role:    entity.RoleUser,
		Content: content,
	})

	instruction := prompt.SystemInstruction(session.Persona, session.Purpose)

	reply, err := uc.inference.Complete(ctx, instruction, session.Turns)
	if err != nil {
		ctxzap.Error(ctx, "inference call failed, substituting apology", zap.Error(err))
		reply = apologyReply
	}

	session.Turns = append(session.Turns, entity.Turn{
		ID:      uuid.New().String(),
		Role:    entity.RoleAssistant,
		Content: reply,
	})

	if err := uc.stateRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// Complete serves the stateless chat endpoint: the caller supplies the
// transcript and the raw persona/purpose selection. Unknown category
// values degrade inside the resolver instead of failing the call.
func (uc *ChatUsecase) Complete(ctx context.Context, messages []entity.Turn, personaKey, purposeID string) (string, error) {
	persona := entity.ParsePersonaKey(personaKey)
	purpose := entity.Purpose(purposeID)

	instruction := prompt.SystemInstruction(persona, purpose)

	return uc.inference.Complete(ctx, instruction, messages)
}

func (uc *ChatUsecase) acquire(userEmail string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, busy := uc.inFlight[userEmail]; busy {
		return false
	}
	uc.inFlight[userEmail] = struct{}{}
	return true
}

func (uc *ChatUsecase) release(userEmail string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	delete(uc.inFlight, userEmail)
}
