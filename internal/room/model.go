package room

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// Room statuses
const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusCleaning    = "Cleaning"
	StatusMaintenance = "Maintenance"
)

// Room types
const (
	TypeSingle = "Single"
	TypeDouble = "Double"
	TypeSuite  = "Suite"
	TypeDeluxe = "Deluxe"
)

// Room maps to the rooms table
type Room struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Number        string         `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Type          string         `gorm:"size:20;not null" json:"type"`
	Status        string         `gorm:"size:20;not null;default:Available;index" json:"status"`
	PricePerNight float64        `gorm:"not null" json:"pricePerNight"`
	Discount      float64        `gorm:"default:0" json:"discount"` // percent, 0-100
	Capacity      int            `gorm:"not null;default:2" json:"capacity"`
	Description   string         `gorm:"type:text" json:"description"`
	Amenities     datatypes.JSON `gorm:"type:jsonb" json:"amenities"`
	Images        datatypes.JSON `gorm:"type:jsonb" json:"images"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

// EffectiveRate returns the nightly rate after discount. A discounted rate
// is rounded to the nearest dollar once, per night; an undiscounted rate
// passes through untouched.
func (r *Room) EffectiveRate() float64 {
	if r.Discount > 0 {
		return math.Round(r.PricePerNight * (1 - r.Discount/100))
	}
	return r.PricePerNight
}

// Bookable reports whether the room can take reservations at all.
// Maintenance and Cleaning rooms are out of inventory regardless of dates.
func (r *Room) Bookable() bool {
	return r.Status != StatusMaintenance && r.Status != StatusCleaning
}

// ValidStatus reports whether s is a known room status.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
		return true
	}
	return false
}

// ValidType reports whether t is a known room type.
func ValidType(t string) bool {
	switch t {
	case TypeSingle, TypeDouble, TypeSuite, TypeDeluxe:
		return true
	}
	return false
}

// CreateRoomRequest is the staff payload for creating a room
type CreateRoomRequest struct {
	Number        string   `json:"number" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gt=0"`
	Discount      float64  `json:"discount" binding:"gte=0,lte=100"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// UpdateRoomRequest is the staff payload for updating a room
type UpdateRoomRequest struct {
	Type          *string   `json:"type"`
	PricePerNight *float64  `json:"pricePerNight"`
	Discount      *float64  `json:"discount"`
	Capacity      *int      `json:"capacity"`
	Description   *string   `json:"description"`
	Amenities     *[]string `json:"amenities"`
	Images        *[]string `json:"images"`
}

// UpdateStatusRequest changes a room's housekeeping status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RoomFilters narrows staff room listings
type RoomFilters struct {
	Status string
	Type   string
}
