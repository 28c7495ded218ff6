package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharath018/hotel-management-backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListUsers godoc
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	filters := Filters{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Query:  c.Query("q"),
		Page:   parseIntDefault(c.Query("page"), 1),
		Limit:  parseIntDefault(c.Query("limit"), 20),
	}

	users, total, err := h.svc.ListUsers(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  users,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

// GetUser godoc
// @Summary      Get one account
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} auth.User
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// CreateStaff godoc
// @Summary      Provision a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateStaffRequest true "Staff details"
// @Success      201 {object} auth.User
// @Security     BearerAuth
// @Router       /users [post]
func (h *Handler) CreateStaff(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.CreateStaff(c.Request.Context(), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnknownRole), errors.Is(err, ErrGuestUnmanaged):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, u)
}

// UpdateUser godoc
// @Summary      Edit an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200 {object} auth.User
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.UpdateUser(c.Request.Context(), uint(id), req, ac, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, ErrUnknownRole), errors.Is(err, ErrInvalidStatus),
			errors.Is(err, ErrCannotDemote), errors.Is(err, ErrSelfDeactivate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, u)
}

// GetMyProfile godoc
// @Summary      Get the authenticated account
// @Tags         users
// @Produce      json
// @Success      200 {object} auth.User
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), ac.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// UpdateMyProfile godoc
// @Summary      Edit the authenticated account's contact details
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200 {object} auth.User
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.UpdateMyProfile(c.Request.Context(), ac.UserID, req.Name, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, u)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
