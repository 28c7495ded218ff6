package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Phone    string `json:"phone" example:"+14155550123"`
}

// Register handles POST /auth/register
// @Summary Register a guest account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Registration payload"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := RegisterInput(req)

	if err := h.service.Register(input); err != nil {
		if strings.Contains(err.Error(), "already registered") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokens, user, err := h.service.Login(LoginInput(req))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role.RoleName,
		},
	})
}

// ===============================
// Refresh Token
// ===============================

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// ===============================
// Forgot Password
// ===============================

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide a valid email address",
		})
		return
	}

	err := h.service.RequestPasswordReset(req.Email)
	if err != nil {
		// Don't reveal whether the account exists
		if strings.Contains(err.Error(), "user not found") {
			c.JSON(http.StatusOK, gin.H{
				"message": "If an account exists with this email, a password reset link has been sent",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to send email",
			"message": "Email service is currently unavailable. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists with this email, a password reset link has been sent",
	})
}

// ===============================
// Reset Password
// ===============================

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide both token and new password",
		})
		return
	}

	err := h.service.ResetPassword(req.Token, req.NewPassword)
	if err != nil {
		if strings.Contains(err.Error(), "token") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid token",
				"message": "This password reset link is invalid or has expired. Please request a new one.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"message": "Unable to reset password. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}

// ===============================
// Logout
// ===============================

func (h *Handler) Logout(c *gin.Context) {
	_ = h.service.Logout() // stateless
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
