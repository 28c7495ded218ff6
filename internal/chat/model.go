package chat

import "time"

// Message maps to the chat_messages table. Conversations are keyed by the
// guest: staff replies carry the guest's ID as ConversationID.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	SenderName     string    `gorm:"size:100" json:"sender_name"`
	FromStaff      bool      `gorm:"not null;default:false" json:"from_staff"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }

// SendMessageRequest posts one chat message. ConversationID is required
// only for staff; guests always post into their own conversation.
type SendMessageRequest struct {
	ConversationID uint   `json:"conversation_id"`
	Body           string `json:"body" binding:"required"`
}

// ConversationSummary is one row of the staff inbox
type ConversationSummary struct {
	ConversationID uint      `json:"conversation_id"`
	GuestName      string    `json:"guest_name"`
	LastMessage    string    `json:"last_message"`
	LastAt         time.Time `json:"last_at"`
	Unread         int64     `json:"unread"`
}
