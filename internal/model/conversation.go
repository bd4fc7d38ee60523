package model

import (
	"errors"
	"time"
)

// Message roles as stored in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn inside a conversation.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Conversation is a persisted chat session keyed to a user.
type Conversation struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Topic     string    `json:"topic" bson:"topic"`
	Messages  []Message `json:"messages" bson:"messages"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HistoryExport is the portable history file format for export/import.
type HistoryExport struct {
	Conversations []Conversation `json:"conversations"`
	ExportedAt    time.Time      `json:"exportedAt"`
}

var (
	errHistoryNoConversations = errors.New("history file missing conversations array")
	errHistoryBadEntry        = errors.New("history entry missing topic or messages")
)

// Validate checks an imported history file for the expected shape.
func (h *HistoryExport) Validate() error {
	if h.Conversations == nil {
		return errHistoryNoConversations
	}
	for _, c := range h.Conversations {
		if c.Topic == "" && len(c.Messages) == 0 {
			return errHistoryBadEntry
		}
	}
	return nil
}
