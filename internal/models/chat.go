package models

import "time"

// Chat message roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Escalation is a request from a chat user to be handed to a human agent.
type Escalation struct {
	SessionID   string
	UserType    string
	Message     string
	History     []ChatMessage
	RequestedAt time.Time
}
