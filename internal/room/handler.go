package room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharath018/hotel-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ListRooms handles GET /rooms
// Guests see only bookable inventory; staff see everything with filters.
func (h *Handler) ListRooms(c *gin.Context) {
	accessCtx, ok := middleware.GetAccessContext(c)
	if ok && accessCtx.IsStaff() {
		filters := RoomFilters{
			Status: c.Query("status"),
			Type:   c.Query("type"),
		}
		rooms, err := h.service.ListRooms(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rooms})
		return
	}

	rooms, err := h.service.ListBookableRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GetRoom handles GET /rooms/:id
func (h *Handler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

// CreateRoom handles POST /rooms
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body CreateRoomRequest true "Room payload"
// @Success 201 {object} gin.H
// @Router /api/v1/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)
	ip := middleware.GetIPFromContext(c)

	room, err := h.service.CreateRoom(c.Request.Context(), req, accessCtx.UserID, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateRoom):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidRoomType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": room})
}

// UpdateRoom handles PUT /rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)
	ip := middleware.GetIPFromContext(c)

	room, err := h.service.UpdateRoom(c.Request.Context(), uint(id), req, accessCtx.UserID, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, ErrInvalidRoomType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

// UpdateRoomStatus handles PUT /rooms/:id/status
func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.service.UpdateRoomStatus(c.Request.Context(), uint(id), req.Status, accessCtx.UserID, ip); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, ErrInvalidRoomStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room status updated"})
}

// DeleteRoom handles DELETE /rooms/:id
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.service.DeleteRoom(c.Request.Context(), uint(id), accessCtx.UserID, ip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
