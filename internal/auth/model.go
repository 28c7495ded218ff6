package auth

import "time"

// UserRole maps to the user_roles table
type UserRole struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"size:255" json:"description"`
}

func (UserRole) TableName() string { return "user_roles" }

// User maps to the users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Phone        string    `gorm:"size:20" json:"phone"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	Role         UserRole  `gorm:"foreignKey:RoleID" json:"role"`
	Status       string    `gorm:"size:20;default:active" json:"status"` // active/inactive
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicRoleResponse is the role shape exposed on the registration page
type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}
