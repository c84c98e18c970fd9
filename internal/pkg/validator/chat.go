package validator

import (
	"fmt"
	"strings"

	"github.com/personalab/chat-backend/internal/entity"
)

// ValidateStartSession validates StartSessionRequest
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if req.Persona == "" {
		return fmt.Errorf("%w: persona", entity.ErrMissingField)
	}
	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose", entity.ErrMissingField)
	}

	return nil
}

// ValidateSendMessage validates an outgoing user turn
func (v *Validator) ValidateSendMessage(req *entity.SendMessageRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return entity.ErrEmptyMessage
	}

	return nil
}

// ValidateChatRequest validates the stateless completion request
func (v *Validator) ValidateChatRequest(req *entity.ChatRequest) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages", entity.ErrMissingField)
	}

	return nil
}
