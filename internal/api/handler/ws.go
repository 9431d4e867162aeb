package handler

import (
	"net/http"
	"strings"

	"lovegogo/backend/internal/chathub"
	"lovegogo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket.
// Токен приймається в Authorization-заголовку або query-параметрі token
// (браузерний WebSocket не вміє ставити заголовки).
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	userID, err := h.validateAndGetUserID(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	// Забанені користувачі не отримують realtime-з'єднання.
	if banned, err := h.Storage.IsUserBanned(userID); err == nil && banned {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "banned"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		Hub:    h.Hub,
		UserID: userID,
		Conn:   conn,
		Send:   make(chan models.ChatMessage, 256),
	}

	// Реєстрація клієнта в хабі та запуск його pumps.
	h.Hub.RegisterCh <- client
	client.Run()
}
