package event

import (
	"time"
)

// Event statuses
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// Event types
const (
	TypeWedding   = "Wedding"
	TypeCorporate = "Corporate"
	TypeSocial    = "Social"
	TypeOther     = "Other"
)

// Event maps to the events table for banquet and hall bookings
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Guests      int       `gorm:"not null" json:"guests"`
	Notes       string    `gorm:"type:text" json:"notes"`
	TotalAmount float64   `gorm:"not null" json:"totalAmount"`
	// Cost stays nil until an invoice is issued; manual discounts are
	// applied at invoicing, never at creation.
	InvoicedCost *float64  `json:"cost"`
	Status       string    `gorm:"size:20;not null;default:Pending;index" json:"status"`
	OrderID      string    `gorm:"size:64;uniqueIndex" json:"order_id"`
	PaymentID    *string   `gorm:"size:64" json:"payment_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// Rate is one row of the event pricing table
type Rate struct {
	Base     float64 `json:"base"`
	PerGuest float64 `json:"per_guest"`
}

// Pricing is the static event rate table. Totals are base + per-guest
// rate times the guest count; extras and discounts never apply here.
var Pricing = map[string]Rate{
	TypeWedding:   {Base: 5000, PerGuest: 50},
	TypeCorporate: {Base: 2000, PerGuest: 35},
	TypeSocial:    {Base: 1000, PerGuest: 30},
	TypeOther:     {Base: 1000, PerGuest: 25},
}

func ValidType(t string) bool {
	_, ok := Pricing[t]
	return ok
}

// CreateEventRequest opens a hall-event request
type CreateEventRequest struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Guests int    `json:"guests" binding:"required,gt=0"`
	Notes  string `json:"notes"`
}

// UpdateStatusRequest moves an event along its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// InvoiceRequest issues the final cost, optionally discounted by staff
type InvoiceRequest struct {
	Cost float64 `json:"cost" binding:"required,gt=0"`
}

// PaymentIntentResponse returns the gateway order for an event
type PaymentIntentResponse struct {
	EventID     uint    `json:"event_id"`
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	RazorpayKey string  `json:"razorpay_key"`
}

// ConfirmPaymentRequest carries the gateway's payment proof
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderID" binding:"required"`
	PaymentID string `json:"paymentID" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// EventFilters narrows staff event listings
type EventFilters struct {
	UserID *uint
	Status string
	Type   string
	Page   int
	Limit  int
}
