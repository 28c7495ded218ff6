package billing

import "time"

// Bill statuses
const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Bill maps to the bills table. A bill belongs to either a room booking or
// a hall event, never both.
type Bill struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	BookingID     *uint     `gorm:"index" json:"booking_id,omitempty"`
	EventID       *uint     `gorm:"index" json:"event_id,omitempty"`
	Description   string    `gorm:"size:255" json:"description"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaidAmount    float64   `gorm:"default:0" json:"paidAmount"`
	Status        string    `gorm:"size:20;not null;default:Unpaid;index" json:"status"`
	ReceiptNumber string    `gorm:"size:64;uniqueIndex" json:"receipt_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Bill) TableName() string { return "bills" }

// PayRequest records a payment against a bill
type PayRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"` // cash, card, online
}

// BillFilters narrows staff bill listings
type BillFilters struct {
	UserID *uint
	Status string
	Page   int
	Limit  int
}
