package chat

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	History(ctx context.Context, conversationID uint, limit int) ([]Message, error)
	ListConversations(ctx context.Context) ([]ConversationSummary, error)
	MarkConversationRead(ctx context.Context, conversationID uint, fromStaff bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) History(ctx context.Context, conversationID uint, limit int) ([]Message, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *repository) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	var summaries []ConversationSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (m.conversation_id)
			m.conversation_id,
			u.name AS guest_name,
			m.body AS last_message,
			m.created_at AS last_at,
			(SELECT COUNT(*) FROM chat_messages c
			 WHERE c.conversation_id = m.conversation_id
			   AND c.from_staff = false AND c.read_at IS NULL) AS unread
		FROM chat_messages m
		JOIN users u ON u.id = m.conversation_id
		ORDER BY m.conversation_id, m.created_at DESC
	`).Scan(&summaries).Error
	return summaries, err
}

// MarkConversationRead marks the other side's messages as read.
func (r *repository) MarkConversationRead(ctx context.Context, conversationID uint, fromStaff bool) error {
	return r.db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ? AND from_staff = ? AND read_at IS NULL", conversationID, fromStaff).
		Update("read_at", time.Now()).Error
}
