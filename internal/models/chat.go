package models

import (
	"github.com/google/uuid"
)

// Conversation pairs two users and points at their latest message so
// conversation lists can be ordered by recency. The group flag exists for
// forward compatibility but is never set by this server.
type Conversation struct {
	BaseModel
	IsGroupChat     bool       `json:"is_group_chat"`
	Users           []User     `gorm:"many2many:conversation_users;" json:"users,omitempty"`
	LatestMessageID *uuid.UUID `gorm:"type:uuid" json:"latest_message_id,omitempty"`
	LatestMessage   *Message   `json:"latest_message,omitempty"`
}

// Message is immutable once created.
type Message struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;index" json:"sender_id"`
	Sender         *User     `json:"sender,omitempty"`
	Content        string    `json:"content"`
}
