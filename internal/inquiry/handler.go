package inquiry

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

// CreateInquiry godoc
// @Summary      Submit a contact inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        request body CreateInquiryRequest true "Inquiry"
// @Success      201 {object} Inquiry
// @Router       /inquiries [post]
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The form is public; attach the user only when a session exists.
	var userID *uint
	if ac, ok := middleware.GetAccessContext(c); ok {
		uid := ac.UserID
		userID = &uid
	}

	i, err := h.svc.CreateInquiry(c.Request.Context(), req, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry submitted", "inquiry": i})
}

// ListInquiries godoc
// @Summary      List inquiries
// @Tags         inquiries
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /inquiries [get]
func (h *Handler) ListInquiries(c *gin.Context) {
	filters := InquiryFilters{
		Status: c.Query("status"),
		Page:   parseIntDefault(c.Query("page"), 1),
		Limit:  parseIntDefault(c.Query("limit"), 20),
	}

	inquiries, total, err := h.svc.ListInquiries(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  inquiries,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

// Reply godoc
// @Summary      Reply to an inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id path int true "Inquiry ID"
// @Param        request body ReplyRequest true "Reply"
// @Success      200 {object} Inquiry
// @Security     BearerAuth
// @Router       /inquiries/{id}/reply [post]
func (h *Handler) Reply(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry ID"})
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	i, err := h.svc.Reply(c.Request.Context(), uint(id), req.Reply, ac.UserID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		case errors.Is(err, ErrAlreadyReplied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply sent", "inquiry": i})
}

// Archive godoc
// @Summary      Archive an inquiry
// @Tags         inquiries
// @Produce      json
// @Param        id path int true "Inquiry ID"
// @Success      200 {object} Inquiry
// @Security     BearerAuth
// @Router       /inquiries/{id}/archive [put]
func (h *Handler) Archive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry ID"})
		return
	}

	i, err := h.svc.Archive(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inquiry archived", "inquiry": i})
}

// DeleteInquiry godoc
// @Summary      Delete an inquiry
// @Tags         inquiries
// @Produce      json
// @Param        id path int true "Inquiry ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /inquiries/{id} [delete]
func (h *Handler) DeleteInquiry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry ID"})
		return
	}

	if err := h.svc.DeleteInquiry(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inquiry deleted"})
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
