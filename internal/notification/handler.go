package notification

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GetMyNotifications handles GET /notifications
func (h *Handler) GetMyNotifications(c *gin.Context) {
	accessCtx, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	items, err := h.service.ListInAppByUser(c.Request.Context(), accessCtx.UserID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// MarkRead handles PUT /notifications/read
func (h *Handler) MarkRead(c *gin.Context) {
	accessCtx, _ := middleware.GetAccessContext(c)

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.All {
		if err := h.service.MarkAllInAppAsRead(c.Request.Context(), accessCtx.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "all marked as read"})
		return
	}

	if req.ID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id or all is required"})
		return
	}

	if err := h.service.MarkInAppAsRead(c.Request.Context(), *req.ID, accessCtx.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// DeleteNotification handles DELETE /notifications/:id
func (h *Handler) DeleteNotification(c *gin.Context) {
	accessCtx, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.service.DeleteInApp(c.Request.Context(), uint(id), accessCtx.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// StreamInApp handles GET /notifications/stream (SSE)
func (h *Handler) StreamInApp(c *gin.Context) {
	accessCtx, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	h.streamForUser(c, accessCtx.UserID, accessCtx.IsStaff())
}

// StreamInAppWithToken handles GET /notifications/stream-token?token=JWT.
// EventSource cannot set headers, so the token rides the query string.
func (h *Handler) StreamInAppWithToken(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	cfg := config.Load()
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
		return
	}
	uidFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id missing"})
		return
	}

	role, _ := claims["role"].(string)
	isStaff := false
	for _, r := range middleware.StaffRoles {
		if role == r {
			isStaff = true
			break
		}
	}

	h.streamForUser(c, uint(uidFloat), isStaff)
}

func (h *Handler) streamForUser(c *gin.Context, userID uint, isStaff bool) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	channels := []string{"notifications:user:" + strconv.FormatUint(uint64(userID), 10)}
	if isStaff {
		channels = append(channels, StaffChannel)
	}

	sub := utils.RedisClient.Subscribe(c, channels...)
	defer sub.Close()

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	flusher.Flush()

	// Browsers resend the last seen event id on reconnect; replay anything
	// persisted after it before switching to the live feed.
	if lastID, err := strconv.ParseUint(c.GetHeader("Last-Event-ID"), 10, 32); err == nil {
		missed, err := h.service.ListInAppSince(c.Request.Context(), userID, uint(lastID))
		if err != nil {
			log.Printf("⚠️ Failed to replay notifications for user %d: %v", userID, err)
		}
		for i := range missed {
			writeSSE(c.Writer, missed[i].ID, string(streamPayload(&missed[i])))
		}
		if len(missed) > 0 {
			flusher.Flush()
		}
	}

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope struct {
				ID uint `json:"id"`
			}
			_ = json.Unmarshal([]byte(msg.Payload), &envelope)
			writeSSE(c.Writer, envelope.ID, msg.Payload)
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, id uint, payload string) {
	if id > 0 {
		_, _ = w.Write([]byte("id: " + strconv.FormatUint(uint64(id), 10) + "\n"))
	}
	_, _ = w.Write([]byte("event: inapp\n"))
	_, _ = w.Write([]byte("data: " + payload + "\n\n"))
}

// RegisterFCMToken handles POST /notifications/fcm/register
func (h *Handler) RegisterFCMToken(c *gin.Context) {
	accessCtx, _ := middleware.GetAccessContext(c)

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RegisterDeviceToken(c.Request.Context(), accessCtx.UserID, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device registered"})
}

// UnregisterFCMToken handles POST /notifications/fcm/unregister
func (h *Handler) UnregisterFCMToken(c *gin.Context) {
	accessCtx, _ := middleware.GetAccessContext(c)

	var req struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RemoveDeviceToken(c.Request.Context(), accessCtx.UserID, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}
