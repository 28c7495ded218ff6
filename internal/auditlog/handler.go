package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAuditLogs handles GET /auditlogs
// @Summary Get audit logs
// @Description Retrieve audit logs with optional filters and pagination (Admin only)
// @Tags AuditLog
// @Accept json
// @Produce json
// @Param user_id query uint false "Filter by user ID"
// @Param target_id query uint false "Filter by target record ID"
// @Param target_type query string false "Filter by target type (booking, room, event, bill, user)"
// @Param action query string false "Filter by action (partial match)"
// @Param status query string false "Filter by status"
// @Param from_date query string false "Filter from date (YYYY-MM-DD)"
// @Param to_date query string false "Filter to date (YYYY-MM-DD)"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Number of records per page (default: 20)"
// @Success 200 {object} PaginatedAuditLogs
// @Failure 400 {object} gin.H
// @Failure 500 {object} gin.H
// @Router /api/v1/auditlogs [get]
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseUint(userIDStr, 10, 32); err == nil {
			uid := uint(userID)
			filter.UserID = &uid
		}
	}

	if targetIDStr := c.Query("target_id"); targetIDStr != "" {
		if targetID, err := strconv.ParseUint(targetIDStr, 10, 32); err == nil {
			tid := uint(targetID)
			filter.TargetID = &tid
		}
	}

	filter.TargetType = c.Query("target_type")
	filter.Action = c.Query("action")
	filter.Status = c.Query("status")

	if fromDateStr := c.Query("from_date"); fromDateStr != "" {
		if fromDate, err := time.Parse("2006-01-02", fromDateStr); err == nil {
			filter.FromDate = &fromDate
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_date format. Use YYYY-MM-DD"})
			return
		}
	}

	if toDateStr := c.Query("to_date"); toDateStr != "" {
		if toDate, err := time.Parse("2006-01-02", toDateStr); err == nil {
			// Set to end of day
			endOfDay := toDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			filter.ToDate = &endOfDay
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to_date format. Use YYYY-MM-DD"})
			return
		}
	}

	filter.Page = 1
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}

	filter.Limit = 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	result, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAuditLogByID handles GET /auditlogs/:id
// @Summary Get audit log by ID
// @Description Retrieve a specific audit log by ID (Admin only)
// @Tags AuditLog
// @Accept json
// @Produce json
// @Param id path uint true "Audit Log ID"
// @Success 200 {object} AuditLogResponse
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/auditlogs/{id} [get]
func (h *Handler) GetAuditLogByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audit log ID"})
		return
	}

	log, err := h.service.GetAuditLogByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit log not found"})
		return
	}

	c.JSON(http.StatusOK, log)
}
