package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/sharath018/hotel-management-backend/internal/auth"
	"github.com/sharath018/hotel-management-backend/internal/notification"
	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

var ErrMissingConversation = errors.New("conversation_id is required for staff messages")

// StaffInbox is the Redis channel every staff chat subscriber listens on.
const StaffInbox = "chat:staff"

func conversationChannel(guestID uint) string {
	return fmt.Sprintf("chat:user:%d", guestID)
}

type Service interface {
	SendMessage(ctx context.Context, req SendMessageRequest, actor middleware.AccessContext) (*Message, error)
	History(ctx context.Context, conversationID uint, limit int) ([]Message, error)
	ListConversations(ctx context.Context) ([]ConversationSummary, error)
	MarkRead(ctx context.Context, conversationID uint, actor middleware.AccessContext) error
}

type service struct {
	repo     Repository
	users    auth.Repository
	notifier notification.Service
}

func NewService(repo Repository, users auth.Repository, notifier notification.Service) Service {
	return &service{repo: repo, users: users, notifier: notifier}
}

// SendMessage persists the message, then fans it out over Redis pub/sub:
// always to the guest's channel, and to the staff inbox for guest messages.
func (s *service) SendMessage(ctx context.Context, req SendMessageRequest, actor middleware.AccessContext) (*Message, error) {
	conversationID := actor.UserID
	if actor.IsStaff() {
		if req.ConversationID == 0 {
			return nil, ErrMissingConversation
		}
		conversationID = req.ConversationID
	}

	m := &Message{
		ConversationID: conversationID,
		SenderID:       actor.UserID,
		FromStaff:      actor.IsStaff(),
		Body:           req.Body,
	}
	if u, err := s.users.FindByID(actor.UserID); err == nil {
		m.SenderName = u.Name
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	payload, _ := json.Marshal(m)
	if err := utils.RedisClient.Publish(ctx, conversationChannel(conversationID), payload).Err(); err != nil {
		log.Printf("⚠️ Failed to publish chat message %d: %v", m.ID, err)
	}
	if !m.FromStaff {
		if err := utils.RedisClient.Publish(ctx, StaffInbox, payload).Err(); err != nil {
			log.Printf("⚠️ Failed to publish chat message %d to staff inbox: %v", m.ID, err)
		}
		if s.notifier != nil {
			preview := req.Body
			if len(preview) > 80 {
				preview = preview[:80] + "..."
			}
			if err := s.notifier.NotifyStaff(ctx, "New chat message", preview, notification.CategoryChat); err != nil {
				log.Printf("⚠️ Failed to notify staff of chat message: %v", err)
			}
		}
	}

	return m, nil
}

func (s *service) History(ctx context.Context, conversationID uint, limit int) ([]Message, error) {
	return s.repo.History(ctx, conversationID, limit)
}

func (s *service) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	return s.repo.ListConversations(ctx)
}

// MarkRead clears the unread flag on the other side's messages.
func (s *service) MarkRead(ctx context.Context, conversationID uint, actor middleware.AccessContext) error {
	// Staff reading a conversation marks guest messages read and vice versa.
	return s.repo.MarkConversationRead(ctx, conversationID, !actor.IsStaff())
}
