package entity

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in a conversation. Turns are append-only; their
// insertion order is the conversation history resent on every
// inference call.
type Turn struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatSession is the in-progress conversation for a single user: the
// persona/purpose that produced its system instruction plus the ordered
// transcript, seeded with one synthetic assistant greeting turn.
type ChatSession struct {
	UserEmail string    `json:"user_email"`
	Persona   Persona   `json:"persona"`
	Purpose   Purpose   `json:"purpose"`
	Turns     []Turn    `json:"turns"`
	StartedAt time.Time `json:"started_at"`
}

// Snapshot returns a copy of the transcript in insertion order.
func (s *ChatSession) Snapshot() []Turn {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	return turns
}

// User is the durable identity record, keyed by email.
type User struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the immutable record of a completed session,
// persisted at feedback time.
type Conversation struct {
	ID        string    `json:"conversation_id"`
	UserEmail string    `json:"user_email"`
	Persona   string    `json:"persona"`
	Purpose   string    `json:"purpose"`
	Messages  []Turn    `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// Feedback is the fixed five-field survey, associated 1:1 with a
// conversation. Created once, never mutated.
type Feedback struct {
	ID                 string    `json:"id"`
	ConversationID     string    `json:"conversation_id"`
	UserEmail          string    `json:"user_email"`
	PersonaMatch       string    `json:"persona_match"`
	CommunicationStyle string    `json:"communication_style"`
	FeedbackApproach   string    `json:"feedback_approach"`
	AnswerLength       string    `json:"answer_length"`
	Comments           string    `json:"comments"`
	CreatedAt          time.Time `json:"created_at"`
}

// PreferenceAggregate is the per-(user, persona, purpose) running
// counter of completed conversations. Exactly one row exists per
// triple; this is the only entity with update-in-place semantics.
type PreferenceAggregate struct {
	UserEmail          string    `json:"user_email"`
	Persona            string    `json:"preferred_persona"`
	Purpose            string    `json:"preferred_purpose"`
	TotalConversations int       `json:"total_conversations"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IdentityUser is the opaque identity returned by the identity service.
type IdentityUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession is an authenticated identity-service session.
type AuthSession struct {
	AccessToken string       `json:"access_token"`
	User        IdentityUser `json:"user"`
}
