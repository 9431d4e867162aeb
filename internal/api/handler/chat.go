package handler

import (
	"net/http"
	"time"

	"lovegogo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ListRooms повертає кімнати автентифікованого користувача —
// по одній на кожного метч-партнера, з останнім повідомленням та лічильником непрочитаних.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Chat.ListRooms(c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// ListMessages повертає історію кімнати та скидає лічильник непрочитаних глядача.
// Доступ мають лише учасники кімнати.
func (h *Handler) ListMessages(c *gin.Context) {
	roomID := c.Param("id")

	messages, err := h.Chat.ListMessages(roomID, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Глядач відкрив кімнату — момент звірки непрочитаних.
	if err := h.Chat.MarkRoomRead(roomID, c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage додає повідомлення в кімнату від автентифікованого відправника.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Chat.SendMessage(c.Param("id"), c.GetString("userId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// LoadMoreMessages повертає сторінку повідомлень, старших за курсор before (RFC3339).
// Без курсора повертається порожнє продовження.
func (h *Handler) LoadMoreMessages(c *gin.Context) {
	var before time.Time
	if v := c.Query("before"); v != "" {
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before cursor"})
			return
		}
		before = parsed
	}

	messages, err := h.Chat.LoadMoreMessages(c.Param("id"), c.GetString("userId"), before)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type reportRequest struct {
	RoomID         string `json:"room_id"`
	ReportedUserID string `json:"reported_user_id" binding:"required"`
	ReportType     string `json:"report_type" binding:"required"`
}

// Report приймає скаргу на іншого користувача.
func (h *Handler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := &models.Report{
		RoomID:         req.RoomID,
		ReporterID:     c.GetString("userId"),
		ReportedUserID: req.ReportedUserID,
		ReportType:     req.ReportType,
	}

	if err := h.Moderation.HandleReport(report); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}
