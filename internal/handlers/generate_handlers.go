package handlers

import (
	"net/http"

	"github.com/01moynul/ytgenius-golang/internal/generation"
	"github.com/01moynul/ytgenius-golang/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateInput defines the structure of the JSON request body.
// Pointers let an empty prompt through while still rejecting a missing one.
type GenerateInput struct {
	Prompt       *string `json:"prompt" binding:"required"`
	TaskType     *string `json:"task_type" binding:"required"`
	MetadataType *string `json:"metadata_type"`
}

// Generate runs one paid generation task for the authenticated caller.
func (h *Handlers) Generate(c *gin.Context) {
	// 1. Get User Context (set by AuthMiddleware)
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No Token"})
		return
	}

	// 2. Parse Input
	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.Logger.Info("rejected request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	// 3. Run the task
	res, err := h.Service.Generate(c.Request.Context(), identity, generation.Request{
		Prompt:       *input.Prompt,
		TaskType:     *input.TaskType,
		MetadataType: input.MetadataType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 4. Success
	c.JSON(http.StatusOK, res)
}
