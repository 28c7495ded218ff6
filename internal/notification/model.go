package notification

import "time"

// Notification categories
const (
	CategoryBooking = "booking"
	CategoryEvent   = "event"
	CategoryInquiry = "inquiry"
	CategoryPayment = "payment"
	CategoryChat    = "chat"
	CategoryGeneral = "general"
)

// InAppNotification is a bell notification for one user. The server-assigned
// ID doubles as the client-side dedupe key.
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;index" json:"category"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InAppNotification) TableName() string { return "in_app_notifications" }

// FCMDeviceToken stores a registered push target for a user
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	DeviceToken string    `gorm:"size:512;uniqueIndex;not null" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FCMDeviceToken) TableName() string { return "fcm_device_tokens" }

// RegisterTokenRequest registers a push device
type RegisterTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	DeviceType  string `json:"device_type" binding:"omitempty,oneof=android ios web"`
	DeviceName  string `json:"device_name"`
}

// MarkReadRequest marks one or all notifications read
type MarkReadRequest struct {
	ID  *uint `json:"id"`
	All bool  `json:"all"`
}
