package review

import (
	"time"
)

// Review maps to the reviews table. One review per guest per booking.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	BookingID uint      `gorm:"not null;uniqueIndex" json:"booking_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

// CreateReviewRequest submits a review for a completed stay
type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// RoomReviews is the per-room listing with its aggregate rating
type RoomReviews struct {
	RoomID        uint     `json:"room_id"`
	AverageRating float64  `json:"average_rating"`
	Count         int64    `json:"count"`
	Reviews       []Review `json:"reviews"`
}
