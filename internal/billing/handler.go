package billing

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

// ListBills handles GET /billing
// Guests see their own bills; staff see all with filters.
func (h *Handler) ListBills(c *gin.Context) {
	accessCtx, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	filters := BillFilters{Status: c.Query("status")}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}

	if !accessCtx.IsStaff() {
		uid := accessCtx.UserID
		filters.UserID = &uid
	}

	bills, total, err := h.service.ListBills(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bills, "total": total})
}

// PayBill handles POST /billing/:id/pay
func (h *Handler) PayBill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)
	ip := middleware.GetIPFromContext(c)

	bill, err := h.service.Pay(c.Request.Context(), uint(id), req, accessCtx.UserID, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrOverpayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bill})
}

// GetReceipt handles GET /billing/:id/receipt
func (h *Handler) GetReceipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	accessCtx, _ := middleware.GetAccessContext(c)

	bill, err := h.service.GetBill(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	// Guests can only fetch their own receipts
	if !accessCtx.IsStaff() && bill.UserID != accessCtx.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		return
	}

	pdf, err := h.service.ReceiptPDF(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt-"+bill.ReceiptNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
