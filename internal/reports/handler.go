package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Dashboard godoc
// @Summary      Dashboard aggregates
// @Tags         reports
// @Produce      json
// @Success      200 {object} DashboardStats
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export godoc
// @Summary      Download a report file
// @Tags         reports
// @Produce      octet-stream
// @Param        type query string true "Report type" Enums(bookings, revenue, tasks)
// @Param        format query string true "File format" Enums(csv, excel, pdf)
// @Param        from query string false "Window start (YYYY-MM-DD)"
// @Param        to query string false "Window end (YYYY-MM-DD)"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /reports/export [get]
func (h *Handler) Export(c *gin.Context) {
	reportType := c.Query("type")
	format := c.DefaultQuery("format", FormatCSV)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = &t
	}

	data, filename, contentType, err := h.svc.Export(c.Request.Context(), reportType, format, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// Search godoc
// @Summary      Search rooms, bookings and users
// @Tags         reports
// @Produce      json
// @Param        q query string true "Search text"
// @Success      200 {object} SearchResults
// @Security     BearerAuth
// @Router       /search [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	results, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}
