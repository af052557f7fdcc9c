package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/ytgenius-golang/internal/middleware"
	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GetProfile returns the caller's balance, opening the account on first
// access.
func (h *Handlers) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No Token"})
		return
	}

	profile, err := h.Service.Profile(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    profile.ID,
		"email": profile.Email,
		"coins": profile.Coins,
	})
}

// GetHistory lists the caller's past generations, newest first.
// GET /api/history?limit=N
func (h *Handlers) GetHistory(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No Token"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	items, err := h.Service.History(c.Request.Context(), identity, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if items == nil {
		items = []models.Generation{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
