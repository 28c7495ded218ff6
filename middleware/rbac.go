package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-management-backend/internal/auth"
)

// RBACMiddleware checks if the user has one of the allowed roles
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user object"})
			return
		}

		// Always set both user and userID in context for downstream handlers
		c.Set("user", user)
		c.Set("userID", user.ID)

		for _, role := range allowedRoles {
			if user.Role.RoleName == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}

// RequireStaff allows any hotel staff role through.
func RequireStaff() gin.HandlerFunc {
	return RBACMiddleware(StaffRoles...)
}

// RequireFrontDesk allows roles that operate bookings and billing.
func RequireFrontDesk() gin.HandlerFunc {
	return RBACMiddleware(RoleAdmin, RoleManager, RoleReceptionist)
}

// RequireInventoryManager allows roles that manage rooms, pricing and staff.
func RequireInventoryManager() gin.HandlerFunc {
	return RBACMiddleware(RoleAdmin, RoleManager)
}
