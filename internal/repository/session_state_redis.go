package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/personalab/chat-backend/internal/entity"
	"github.com/redis/go-redis/v9"
)

// Key slots per user. Persona and purpose are stored as plain strings,
// the transcript as JSON, mirroring the client-side storage layout the
// flow originally used.
const (
	personaSlot = "chat:persona:%s"
	purposeSlot = "chat:purpose:%s"
	historySlot = "chat:history:%s"
)

// historyPayload is the serialized transcript slot.
type historyPayload struct {
	StartedAt time.Time     `json:"started_at"`
	Turns     []entity.Turn `json:"turns"`
}

var _ SessionStateRepository = &SessionStateRedis{}

// SessionStateRedis implements SessionStateRepository using Redis.
// Slots expire together after the configured TTL so abandoned sessions
// do not accumulate.
type SessionStateRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStateRedis(client *redis.Client, ttl time.Duration) *SessionStateRedis {
	return &SessionStateRedis{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionStateRedis) Save(ctx context.Context, session *entity.ChatSession) error {
	history, err := json.Marshal(historyPayload{
		StartedAt: session.StartedAt,
		Turns:     session.Turns,
	})
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(personaSlot, session.UserEmail), session.Persona.Key(), r.ttl)
	pipe.Set(ctx, fmt.Sprintf(purposeSlot, session.UserEmail), string(session.Purpose), r.ttl)
	pipe.Set(ctx, fmt.Sprintf(historySlot, session.UserEmail), history, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}

	return nil
}

func (r *SessionStateRedis) Load(ctx context.Context, userEmail string) (*entity.ChatSession, error) {
	personaKey, err := r.client.Get(ctx, fmt.Sprintf(personaSlot, userEmail)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load persona slot: %w", err)
	}

	purpose, err := r.client.Get(ctx, fmt.Sprintf(purposeSlot, userEmail)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load purpose slot: %w", err)
	}

	historyRaw, err := r.client.Get(ctx, fmt.Sprintf(historySlot, userEmail)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load history slot: %w", err)
	}

	var history historyPayload
	if historyRaw != "" {
		if err := json.Unmarshal([]byte(historyRaw), &history); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}

	return &entity.ChatSession{
		UserEmail: userEmail,
		Persona:   entity.ParsePersonaKey(personaKey),
		Purpose:   entity.Purpose(purpose),
		Turns:     history.Turns,
		StartedAt: history.StartedAt,
	}, nil
}

func (r *SessionStateRedis) Clear(ctx context.Context, userEmail string) error {
	err := r.client.Del(ctx,
		fmt.Sprintf(personaSlot, userEmail),
		fmt.Sprintf(purposeSlot, userEmail),
		fmt.Sprintf(historySlot, userEmail),
	).Err()
	if err != nil {
		return fmt.Errorf("clear session state: %w", err)
	}

	return nil
}
