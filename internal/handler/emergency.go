package handlers

import (
	"net/http"

	"CampusMind/internal/models"
	"CampusMind/internal/service"
	"CampusMind/pkg/errors"
	"CampusMind/pkg/response"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) handleReportEmergency(c *gin.Context) {
	// missing fields are fine, the alert is created regardless
	var req service.EmergencyRequest
	_ = c.ShouldBindJSON(&req)

	user := models.CurrentUser(c)
	alert, err := h.coordinator.TriggerEmergency(c.Request.Context(), user, req)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "emergency failed", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": alert.UID})
}

type advanceAlertRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) handleAdvanceAlert(c *gin.Context) {
	var req advanceAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	alert, err := h.coordinator.AdvanceAlert(c.Param("uid"), req.Status)
	if err != nil {
		switch {
		case errors.IsCode(err, errors.CodeNotFound):
			response.FailWithStatus(c, http.StatusNotFound, "alert not found", nil)
		case errors.IsCode(err, errors.CodeTransition):
			response.FailWithStatus(c, http.StatusConflict, err.Error(), nil)
		default:
			response.Fail(c, "error", gin.H{"error": err.Error()})
		}
		return
	}
	response.Success(c, "success", gin.H{"alert": alert})
}
