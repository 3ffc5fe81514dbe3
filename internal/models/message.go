package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. It is never mutated after creation.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// IsAssistant reports whether the message was authored by the model
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// ChatMessage is the wire form of a message in a chat request
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// ChatReply holds what was extracted from a chat response
type ChatReply struct {
	Content string
	Model   string
	Done    bool
	// Found is false when the response carried no message.content
	Found bool
	// StatusCode is the HTTP status of the response
	StatusCode int
	// ServerError is the "error" field Ollama sets on failures
	ServerError string
}

// LocalModel describes a model installed on the Ollama server
type LocalModel struct {
	Name       string
	Size       int64
	ModifiedAt string
	Family     string
}
