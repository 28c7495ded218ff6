package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error
	GetUserEmailsByRole(roleNames ...string) ([]string, error)
	GetUserIDsByRole(roleNames ...string) ([]uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// GetUserEmailsByRole fetches active user emails for the given roles
func (r *repository) GetUserEmailsByRole(roleNames ...string) ([]string, error) {
	var emails []string
	err := r.db.
		Table("users").
		Select("users.email").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("user_roles.role_name IN ? AND users.status = ?", roleNames, "active").
		Scan(&emails).Error
	return emails, err
}

// GetUserIDsByRole fetches active user IDs for the given roles
func (r *repository) GetUserIDsByRole(roleNames ...string) ([]uint, error) {
	var ids []uint
	err := r.db.
		Table("users").
		Select("users.id").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("user_roles.role_name IN ? AND users.status = ?", roleNames, "active").
		Scan(&ids).Error
	return ids, err
}
