package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	ListInAppSince(ctx context.Context, userID uint, sinceID uint) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllInAppAsRead(ctx context.Context, userID uint) error
	DeleteInApp(ctx context.Context, id uint, userID uint) error

	SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error
	GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error)
	GetDeviceTokensByRoles(ctx context.Context, roleNames []string) ([]string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	var items []InAppNotification
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ListInAppSince returns notifications newer than sinceID in delivery order,
// used to replay what an SSE client missed while reconnecting.
func (r *repository) ListInAppSince(ctx context.Context, userID uint, sinceID uint) ([]InAppNotification, error) {
	var items []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id > ?", userID, sinceID).
		Order("id ASC").
		Limit(100).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllInAppAsRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *repository) DeleteInApp(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&InAppNotification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	// Re-registering the same token reactivates it for the current user
	var existing FCMDeviceToken
	err := r.db.WithContext(ctx).
		Where("device_token = ?", token.DeviceToken).
		First(&existing).Error
	if err == nil {
		existing.UserID = token.UserID
		existing.DeviceType = token.DeviceType
		existing.DeviceName = token.DeviceName
		existing.IsActive = true
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false).Error
}

func (r *repository) GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Select("device_token").
		Where("user_id = ? AND is_active = true", userID).
		Scan(&tokens).Error
	return tokens, err
}

func (r *repository) GetDeviceTokensByRoles(ctx context.Context, roleNames []string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Table("fcm_device_tokens").
		Select("fcm_device_tokens.device_token").
		Joins("JOIN users ON users.id = fcm_device_tokens.user_id").
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name IN ? AND fcm_device_tokens.is_active = true", roleNames).
		Scan(&tokens).Error
	return tokens, err
}
