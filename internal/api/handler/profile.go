package handler

import (
	"net/http"

	"lovegogo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetProfile повертає профіль за ID.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Storage.GetUserByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMe повертає профіль автентифікованого користувача.
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.Storage.GetUserByID(c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe застосовує часткове оновлення профілю автентифікованого користувача.
// Поля id та email у запиті ігноруються.
func (h *Handler) UpdateMe(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Storage.UpdateUserProfile(c.GetString("userId"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
