package review

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

// CreateReview godoc
// @Summary      Review a completed stay
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body CreateReviewRequest true "Review"
// @Success      201 {object} Review
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, err := h.svc.CreateReview(c.Request.Context(), req, ac.UserID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrNotYourBooking):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrStayNotCompleted), errors.Is(err, ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ListForRoom godoc
// @Summary      Reviews and average rating for a room
// @Tags         reviews
// @Produce      json
// @Param        roomId path int true "Room ID"
// @Success      200 {object} RoomReviews
// @Router       /reviews/room/{roomId} [get]
func (h *Handler) ListForRoom(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	result, err := h.svc.ListForRoom(c.Request.Context(), uint(roomID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.svc.DeleteReview(c.Request.Context(), uint(id), ac); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		case errors.Is(err, ErrNotYourReview):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
