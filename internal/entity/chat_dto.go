package entity

import "time"

// ChatRequest is the body of the stateless POST /api/chat endpoint.
// Messages carry the running transcript including the greeting turn.
type ChatRequest struct {
	Messages []Turn `json:"messages"`
	Persona  string `json:"persona"`
	Purpose  string `json:"purpose"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error envelope returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type StartSessionRequest struct {
	Persona string `json:"persona"`
	Purpose string `json:"purpose"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SessionDTO struct {
	Persona   string    `json:"persona"`
	Purpose   string    `json:"purpose"`
	Turns     []Turn    `json:"turns"`
	StartedAt time.Time `json:"started_at"`
}
