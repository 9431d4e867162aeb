package handler

import (
	"net/http"
	"strconv"
	"strings"

	"lovegogo/backend/internal/matching"

	"github.com/gin-gonic/gin"
)

// GetCandidates повертає стрічку кандидатів для автентифікованого глядача.
// Фільтри передаються query-параметрами: age_min, age_max, interests=a,b,c.
func (h *Handler) GetCandidates(c *gin.Context) {
	filters := matching.Filters{}

	if v := c.Query("age_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid age_min"})
			return
		}
		filters.AgeMin = n
	}
	if v := c.Query("age_max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid age_max"})
			return
		}
		filters.AgeMax = n
	}
	if v := c.Query("interests"); v != "" {
		filters.Interests = strings.Split(v, ",")
	}

	candidates, err := h.Feed.GetCandidates(c.GetString("userId"), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	// Порожній список — це вичерпана стрічка; клієнт показує термінальний стан.
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

type likeRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// Like фіксує лайк і повідомляє, чи утворився метч.
func (h *Handler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isMatch, err := h.Resolver.RecordLike(c.GetString("userId"), req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": isMatch})
}

// Pass фіксує "пас". Нічого не персистить — виключення діє лише в поточній сесії стрічки.
func (h *Handler) Pass(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Resolver.RecordPass(c.GetString("userId"), req.TargetID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
