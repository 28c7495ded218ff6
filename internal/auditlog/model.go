package auditlog

import (
	"time"
)

// Common audit actions
const (
	ActionLogin             = "LOGIN"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionRegister          = "REGISTER"
	ActionPasswordReset     = "PASSWORD_RESET"
	ActionRoomCreated       = "ROOM_CREATED"
	ActionRoomUpdated       = "ROOM_UPDATED"
	ActionRoomDeleted       = "ROOM_DELETED"
	ActionRoomStatusChanged = "ROOM_STATUS_CHANGED"
	ActionBookingCreated    = "BOOKING_CREATED"
	ActionBookingConfirmed  = "BOOKING_CONFIRMED"
	ActionBookingStatus     = "BOOKING_STATUS_CHANGED"
	ActionPaymentVerified   = "PAYMENT_VERIFIED"
	ActionPaymentFailed     = "PAYMENT_FAILED"
	ActionEventCreated      = "EVENT_CREATED"
	ActionEventStatus       = "EVENT_STATUS_CHANGED"
	ActionBillPaid          = "BILL_PAID"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"` // nullable (e.g. failed login)
	TargetID   *uint     `gorm:"index" json:"target_id"`
	TargetType string    `gorm:"size:50;index" json:"target_type"` // booking, room, event, bill, user
	Action     string    `gorm:"size:100;not null;index" json:"action"`
	Details    string    `gorm:"type:jsonb" json:"details"` // freeform JSON details
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	Status     string    `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogResponse represents the audit log response for API
type AuditLogResponse struct {
	ID         uint      `json:"id"`
	UserID     *uint     `json:"user_id"`
	TargetID   *uint     `json:"target_id"`
	TargetType string    `json:"target_type"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UserName   *string   `json:"user_name,omitempty"`
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	UserID     *uint      `json:"user_id"`
	TargetID   *uint      `json:"target_id"`
	TargetType string     `json:"target_type"`
	Action     string     `json:"action"`
	Status     string     `json:"status"`
	FromDate   *time.Time `json:"from_date"`
	ToDate     *time.Time `json:"to_date"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data       []AuditLogResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
