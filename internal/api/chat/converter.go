package chat

import "github.com/personalab/chat-backend/internal/entity"

// toSessionDTO converts ChatSession entity to SessionDTO
func toSessionDTO(session *entity.ChatSession) *entity.SessionDTO {
	return &entity.SessionDTO{
		Persona:   session.Persona.Key(),
		Purpose:   string(session.Purpose),
		Turns:     session.Snapshot(),
		StartedAt: session.StartedAt,
	}
}
