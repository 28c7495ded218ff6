package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// SendMessage godoc
// @Summary      Post a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "Message"
// @Success      201 {object} Message
// @Security     BearerAuth
// @Router       /chat/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.svc.SendMessage(c.Request.Context(), req, ac)
	if err != nil {
		if errors.Is(err, ErrMissingConversation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// History godoc
// @Summary      Chat history for a conversation
// @Tags         chat
// @Produce      json
// @Param        id path int true "Conversation ID"
// @Success      200 {array} Message
// @Security     BearerAuth
// @Router       /chat/history/{id} [get]
func (h *Handler) History(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	// Guests may only read their own conversation.
	if ac.IsGuest() && uint(id) != ac.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	messages, err := h.svc.History(c.Request.Context(), uint(id), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	// read receipts are best effort
	_ = h.svc.MarkRead(c.Request.Context(), uint(id), ac)

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

// ListConversations godoc
// @Summary      Staff chat inbox
// @Tags         chat
// @Produce      json
// @Success      200 {array} ConversationSummary
// @Security     BearerAuth
// @Router       /chat/conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	summaries, err := h.svc.ListConversations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// Stream godoc
// @Summary      Live chat stream (SSE)
// @Tags         chat
// @Produce      text/event-stream
// @Security     BearerAuth
// @Router       /chat/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	var channels []string
	if ac.IsStaff() {
		channels = []string{StaffInbox}
		// Staff can also follow one conversation explicitly.
		if v := c.Query("conversation_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				channels = append(channels, conversationChannel(uint(id)))
			}
		}
	} else {
		channels = []string{conversationChannel(ac.UserID)}
	}

	sub := utils.RedisClient.Subscribe(c, channels...)
	defer sub.Close()

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	flusher.Flush()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = c.Writer.Write([]byte("event: chat\n"))
			_, _ = c.Writer.Write([]byte("data: " + msg.Payload + "\n\n"))
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
