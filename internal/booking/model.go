package booking

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sharath018/hotel-management-backend/internal/room"
)

// Booking statuses
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
	StatusRejected   = "Rejected"
)

// Booking maps to the bookings table
type Booking struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	RoomID          uint           `gorm:"not null;index" json:"room_id"`
	Room            room.Room      `gorm:"foreignKey:RoomID" json:"room"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	CheckIn         time.Time      `gorm:"not null;index" json:"checkInDate"`
	CheckOut        time.Time      `gorm:"not null;index" json:"checkOutDate"`
	Guests          int            `gorm:"not null;default:1" json:"guests"`
	SpecialRequests string         `gorm:"type:text" json:"specialRequests"`
	Extras          datatypes.JSON `gorm:"type:jsonb" json:"extras"`
	TotalAmount     float64        `gorm:"not null" json:"totalAmount"`
	Status          string         `gorm:"size:20;not null;default:Pending;index" json:"status"`
	OrderID         string         `gorm:"size:64;uniqueIndex" json:"order_id"`
	PaymentID       *string        `gorm:"size:64" json:"payment_id,omitempty"`
	IdempotencyKey  string         `gorm:"size:64;index" json:"idempotency_key"`
	// Set when a captured payment could not be matched to a confirmable
	// booking; these rows need manual review and refund.
	NeedsReconciliation bool      `gorm:"default:false;index" json:"needs_reconciliation"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// ExtraItem is one purchased add-on, priced flat per stay
type ExtraItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// QuoteRequest prices a prospective stay. Dates may be blank; the response
// is then tagged incomplete and carries only the extras subtotal.
type QuoteRequest struct {
	RoomID       uint     `json:"room" binding:"required"`
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	Extras       []string `json:"extras"`
}

// CreateIntentRequest opens the payment step for a stay
type CreateIntentRequest struct {
	RoomID       uint     `json:"room" binding:"required"`
	CheckInDate  string   `json:"checkInDate" binding:"required"`
	CheckOutDate string   `json:"checkOutDate" binding:"required"`
	Extras       []string `json:"extras"`
}

// CreateIntentResponse returns the gateway order and the authoritative total
type CreateIntentResponse struct {
	BookingID   uint    `json:"booking_id"`
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	RazorpayKey string  `json:"razorpay_key"`
}

// ConfirmBookingRequest finalizes a paid booking
type ConfirmBookingRequest struct {
	OrderID         string `json:"orderID" binding:"required"`
	PaymentID       string `json:"paymentID" binding:"required"`
	Signature       string `json:"signature" binding:"required"`
	Guests          int    `json:"guests" binding:"required,gt=0"`
	SpecialRequests string `json:"specialRequests"`
}

// UpdateStatusRequest moves a booking along its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UnavailableRange is one blocked window for a room
type UnavailableRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingFilters narrows staff booking listings. Query matches the guest
// name or room number.
type BookingFilters struct {
	UserID *uint
	RoomID *uint
	Status string
	Query  string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}
