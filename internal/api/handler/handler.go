package handler

import (
	"errors"
	"net/http"

	"lovegogo/backend/internal/chat"
	"lovegogo/backend/internal/chathub"
	"lovegogo/backend/internal/matching"
	"lovegogo/backend/internal/moderation"
	"lovegogo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler тримає посилання на всі сервіси рушія.
type Handler struct {
	Hub        *chathub.ManagerService
	Storage    *storage.Service
	Feed       *matching.FeedService
	Resolver   *matching.ResolverService
	Chat       *chat.ConversationService
	Moderation *moderation.Service
}

func NewHandler(
	hub *chathub.ManagerService,
	s *storage.Service,
	feed *matching.FeedService,
	resolver *matching.ResolverService,
	conv *chat.ConversationService,
	mod *moderation.Service,
) *Handler {
	return &Handler{
		Hub:        hub,
		Storage:    s,
		Feed:       feed,
		Resolver:   resolver,
		Chat:       conv,
		Moderation: mod,
	}
}

// respondError транслює типізовані помилки рушія у HTTP-статуси.
// Сам рушій текстів для UI не продукує — лише ці короткі коди.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrRoomNotFound),
		errors.Is(err, matching.ErrViewerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, matching.ErrSelfLike),
		errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
