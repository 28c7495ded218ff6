package event

import (
	"errors"
	"fmt"
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

// CreateEvent godoc
// @Summary      Request a hall event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateEventRequest true "Event details"
// @Success      201 {object} Event
// @Security     BearerAuth
// @Router       /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.svc.CreateEvent(c.Request.Context(), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEventType), errors.Is(err, ErrInvalidEventDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		}
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ListEvents godoc
// @Summary      List hall events
// @Tags         events
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filters := EventFilters{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Page:   parseIntDefault(c.Query("page"), 1),
		Limit:  parseIntDefault(c.Query("limit"), 20),
	}

	if ac.IsGuest() {
		uid := ac.UserID
		filters.UserID = &uid
	}

	events, total, err := h.svc.ListEvents(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  events,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

// GetEvent godoc
// @Summary      Get one hall event
// @Tags         events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} Event
// @Security     BearerAuth
// @Router       /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	e, err := h.svc.GetEvent(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if ac.IsGuest() && e.UserID != ac.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// UpdateStatus godoc
// @Summary      Move an event along its lifecycle
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        request body UpdateStatusRequest true "New status"
// @Success      200 {object} Event
// @Security     BearerAuth
// @Router       /events/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.svc.UpdateStatus(c.Request.Context(), uint(id), req, ac, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrInvalidStatusTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotYourEvent):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated", "event": e})
}

// Invoice godoc
// @Summary      Issue the final cost for an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        request body InvoiceRequest true "Final cost"
// @Success      200 {object} Event
// @Security     BearerAuth
// @Router       /events/{id}/invoice [put]
func (h *Handler) Invoice(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.svc.Invoice(c.Request.Context(), uint(id), req.Cost, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invoice event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event invoiced", "event": e})
}

// CreatePaymentIntent godoc
// @Summary      Open the payment step for an invoiced event
// @Tags         events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} PaymentIntentResponse
// @Security     BearerAuth
// @Router       /events/{id}/payment-intent [post]
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	resp, err := h.svc.CreatePaymentIntent(c.Request.Context(), uint(id), ac.UserID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrNotYourEvent):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotInvoiced):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmPayment godoc
// @Summary      Finalize an event payment
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id path int true "Event ID"
// @Param        request body ConfirmPaymentRequest true "Payment proof"
// @Success      200 {object} Event
// @Security     BearerAuth
// @Router       /events/{id}/payment-confirm [post]
func (h *Handler) ConfirmPayment(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.svc.ConfirmPayment(c.Request.Context(), uint(id), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotYourEvent):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event payment confirmed", "event": e})
}

// DownloadInvoice godoc
// @Summary      Download the event invoice PDF
// @Tags         events
// @Produce      application/pdf
// @Param        id path int true "Event ID"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /events/{id}/invoice [get]
func (h *Handler) DownloadInvoice(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	e, err := h.svc.GetEvent(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if ac.IsGuest() && e.UserID != ac.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	pdfBytes, err := h.svc.InvoicePDF(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render invoice"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=event-invoice-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
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
