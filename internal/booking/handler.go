package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// Quote godoc
// @Summary      Price a prospective stay
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body QuoteRequest true "Stay details"
// @Success      200 {object} Quote
// @Router       /bookings/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, ErrInvalidStayDates), errors.Is(err, ErrUnknownExtra):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreatePaymentIntent godoc
// @Summary      Open the payment step for a stay
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateIntentRequest true "Stay details"
// @Success      200 {object} CreateIntentResponse
// @Security     BearerAuth
// @Router       /bookings/payment-intent [post]
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.CreatePaymentIntent(c.Request.Context(), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, ErrRoomUnavailable), errors.Is(err, ErrRoomOutOfService):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidStayDates), errors.Is(err, ErrUnknownExtra):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmBooking godoc
// @Summary      Finalize a paid booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body ConfirmBookingRequest true "Payment proof"
// @Success      200 {object} Booking
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.svc.ConfirmBooking(c.Request.Context(), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotYourBooking):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrReconciliationRequired):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed", "booking": b})
}

// ListBookings godoc
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filters := BookingFilters{
		Status: c.Query("status"),
		Page:   parseIntDefault(c.Query("page"), 1),
		Limit:  parseIntDefault(c.Query("limit"), 20),
	}

	if ac.IsGuest() {
		uid := ac.UserID
		filters.UserID = &uid
	} else {
		if v := c.Query("user_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				uid := uint(id)
				filters.UserID = &uid
			}
		}
		if v := c.Query("room_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				rid := uint(id)
				filters.RoomID = &rid
			}
		}
		if v := c.Query("from"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filters.From = &t
			}
		}
		if v := c.Query("to"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filters.To = &t
			}
		}
	}

	bookings, total, err := h.svc.ListBookings(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  bookings,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

// GetBooking godoc
// @Summary      Get one booking
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} Booking
// @Security     BearerAuth
// @Router       /bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	b, err := h.svc.GetBooking(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if ac.IsGuest() && b.UserID != ac.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// UnavailableDates godoc
// @Summary      Blocked date ranges for a room
// @Tags         bookings
// @Produce      json
// @Param        roomId path int true "Room ID"
// @Success      200 {array} UnavailableRange
// @Router       /bookings/unavailable/{roomId} [get]
func (h *Handler) UnavailableDates(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	ranges, err := h.svc.UnavailableDates(c.Request.Context(), uint(roomID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unavailable dates"})
		return
	}

	c.JSON(http.StatusOK, ranges)
}

// UpdateStatus godoc
// @Summary      Move a booking along its lifecycle
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body UpdateStatusRequest true "New status"
// @Success      200 {object} Booking
// @Security     BearerAuth
// @Router       /bookings/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.svc.UpdateStatus(c.Request.Context(), uint(id), req.Status, ac, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrInvalidStatusTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotYourBooking):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": b})
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
