package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type AssistantInput struct {
	Message     string   `json:"message" binding:"required"`
	Ingredients []string `json:"ingredients"`
}

// Assistant is the handler for POST /v1/ai/assistant
// Forwards a cooking question to the Gemini-backed recipe assistant.
func (h *Handlers) Assistant(c *gin.Context) {
	if h.AIService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	var input AssistantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.AIService.SuggestRecipe(
		c.Request.Context(), input.Message, input.Ingredients, os.Getenv("AI_MODEL"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
