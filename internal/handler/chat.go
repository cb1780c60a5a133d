package handlers

import (
	"net/http"

	"CampusMind/internal/models"
	"CampusMind/pkg/response"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handlers) handleChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := models.CurrentUser(c)
	result, err := h.coordinator.HandleChatMessage(c.Request.Context(), user, req.Message)
	if err != nil {
		status := gin.H{}
		if result != nil {
			status = gin.H{"status": result.Status}
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "chat failed", status)
		return
	}
	// reply only; label and level stay server-side for the dashboards
	response.Success(c, "success", gin.H{"reply": result.Reply})
}

func (h *Handlers) handleChatHistory(c *gin.Context) {
	user := models.CurrentUser(c)
	history, err := models.ChatHistory(h.db, user.ID, 100)
	if err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	response.Success(c, "success", gin.H{"messages": history})
}
