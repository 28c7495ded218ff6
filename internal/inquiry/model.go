package inquiry

import "time"

// Inquiry statuses
const (
	StatusOpen     = "Open"
	StatusReplied  = "Replied"
	StatusArchived = "Archived"
)

// Inquiry maps to the inquiries table. Submissions come from the public
// contact form, so UserID is optional.
type Inquiry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uint      `gorm:"index" json:"user_id,omitempty"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Subject   string     `gorm:"size:200;not null" json:"subject"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    string     `gorm:"size:20;not null;default:Open;index" json:"status"`
	Reply     string     `gorm:"type:text" json:"reply"`
	RepliedBy *uint      `json:"replied_by,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Inquiry) TableName() string { return "inquiries" }

// CreateInquiryRequest is the public contact form payload
type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ReplyRequest is a staff response to an inquiry
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// InquiryFilters narrows staff inquiry listings
type InquiryFilters struct {
	Status string
	Page   int
	Limit  int
}
