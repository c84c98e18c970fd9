package entity

import "errors"

// Domain errors
var (
	// Auth errors
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrNoActiveSession   = errors.New("no active chat session")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrRequestInFlight   = errors.New("a reply is already being generated")
	ErrUnknownCategory   = errors.New("unknown category value")
	ErrIncompletePersona = errors.New("persona requires both a tone and an approach")

	// Feedback errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrFeedbackIncomplete   = errors.New("all survey fields are required")

	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")
)
