package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/sharath018/hotel-management-backend/internal/auth"
	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

// StaffChannel is the Redis pub/sub channel that every staff dashboard
// subscribes to.
const StaffChannel = "notifications:staff"

type Service interface {
	NotifyUser(ctx context.Context, userID uint, title, message, category string) error
	NotifyStaff(ctx context.Context, title, message, category string) error

	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	ListInAppSince(ctx context.Context, userID uint, sinceID uint) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllInAppAsRead(ctx context.Context, userID uint) error
	DeleteInApp(ctx context.Context, id uint, userID uint) error

	RegisterDeviceToken(ctx context.Context, userID uint, req RegisterTokenRequest) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	fcm      *FCMChannel
}

func NewService(repo Repository, authRepo auth.Repository) Service {
	return &service{
		repo:     repo,
		authRepo: authRepo,
		fcm:      NewFCMChannel(),
	}
}

// NotifyUser stores a bell notification and publishes it on the user's
// Redis channel for live SSE delivery.
func (s *service) NotifyUser(ctx context.Context, userID uint, title, message, category string) error {
	item := &InAppNotification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Category:  category,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.CreateInApp(ctx, item); err != nil {
		return err
	}

	s.publish(fmt.Sprintf("notifications:user:%d", userID), item)

	// Best-effort push to the user's devices
	go func() {
		tokens, err := s.repo.GetUserDeviceTokens(context.Background(), userID)
		if err != nil || len(tokens) == 0 {
			return
		}
		if err := s.fcm.Send(tokens, title, message); err != nil {
			log.Printf("⚠️ Push to user %d failed: %v", userID, err)
		}
	}()

	return nil
}

// NotifyStaff fans a notification out to every staff account, publishes it
// on the shared staff channel, and pushes to registered staff devices.
func (s *service) NotifyStaff(ctx context.Context, title, message, category string) error {
	ids, err := s.authRepo.GetUserIDsByRole(middleware.StaffRoles...)
	if err != nil {
		return fmt.Errorf("failed to resolve staff users: %w", err)
	}

	var first *InAppNotification
	for _, uid := range ids {
		item := &InAppNotification{
			UserID:    uid,
			Title:     title,
			Message:   message,
			Category:  category,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.repo.CreateInApp(ctx, item); err != nil {
			log.Printf("⚠️ in-app fanout error for user %d: %v", uid, err)
			continue
		}
		if first == nil {
			first = item
		}
		s.publish(fmt.Sprintf("notifications:user:%d", uid), item)
	}

	if first != nil {
		s.publish(StaffChannel, first)
	}

	go func() {
		tokens, err := s.repo.GetDeviceTokensByRoles(context.Background(), middleware.StaffRoles)
		if err != nil || len(tokens) == 0 {
			return
		}
		if err := s.fcm.Send(tokens, title, message); err != nil {
			log.Printf("⚠️ Staff push failed: %v", err)
		}
	}()

	return nil
}

func (s *service) publish(channel string, item *InAppNotification) {
	if err := utils.RedisClient.Publish(utils.Ctx, channel, string(streamPayload(item))).Err(); err != nil {
		log.Printf("⚠️ Failed to publish notification on %s: %v", channel, err)
	}
}

// streamPayload is the wire shape shared by the Redis fanout and the SSE
// replay path, so clients see one format regardless of how an event reached
// them.
func streamPayload(item *InAppNotification) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"id":         item.ID,
		"user_id":    item.UserID,
		"title":      item.Title,
		"message":    item.Message,
		"category":   item.Category,
		"is_read":    item.IsRead,
		"created_at": item.CreatedAt,
	})
	return payload
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) ListInAppSince(ctx context.Context, userID uint, sinceID uint) ([]InAppNotification, error) {
	return s.repo.ListInAppSince(ctx, userID, sinceID)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) MarkAllInAppAsRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllInAppAsRead(ctx, userID)
}

func (s *service) DeleteInApp(ctx context.Context, id uint, userID uint) error {
	return s.repo.DeleteInApp(ctx, id, userID)
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, req RegisterTokenRequest) error {
	token := &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
		DeviceName:  req.DeviceName,
		IsActive:    true,
	}
	return s.repo.SaveDeviceToken(ctx, token)
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.RemoveDeviceToken(ctx, userID, deviceToken)
}
