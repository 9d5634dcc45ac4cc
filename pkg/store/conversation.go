// Package store persists chat conversations and the reusable system prompt as JSON files.
package store

import "time"

// Role is the role for a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is one saved chat session.
//
// ID is derived from the collection length at creation time and is not
// unique once conversations have been deleted.
type Conversation struct {
	ID        int       `json:"id"`
	Timestamp int64     `json:"timestamp"`
	History   []Message `json:"history"`
}

// NewConversation returns an empty conversation stamped with now in epoch milliseconds.
func NewConversation(id int, now time.Time) *Conversation {
	return &Conversation{
		ID:        id,
		Timestamp: now.UnixMilli(),
		History:   []Message{},
	}
}

// Append adds a message to the history.
func (c *Conversation) Append(role Role, content string) {
	c.History = append(c.History, Message{Role: role, Content: content})
}

// FirstContent returns the content of the first message, or "" for an empty history.
func (c *Conversation) FirstContent() string {
	if len(c.History) == 0 {
		return ""
	}
	return c.History[0].Content
}
