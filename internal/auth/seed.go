package auth

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultRoles = []UserRole{
	{RoleName: "admin", Description: "Full access to every module"},
	{RoleName: "manager", Description: "Inventory, staff and reporting"},
	{RoleName: "receptionist", Description: "Front desk operations"},
	{RoleName: "housekeeping", Description: "Cleaning and maintenance tasks"},
	{RoleName: "guest", Description: "Self-service booking account"},
}

// SeedUserRoles inserts the role rows if they are missing.
func SeedUserRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded role: %s", role.RoleName)
	}
	return nil
}

// SeedAdminUser creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD.
// It is a no-op when the account already exists or the env vars are unset.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	var adminRole UserRole
	if err := db.Where("role_name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
		Status:       "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", email)
	return nil
}
