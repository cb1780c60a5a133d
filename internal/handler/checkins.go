package handlers

import (
	"net/http"

	"CampusMind/internal/models"
	"CampusMind/internal/service"
	"CampusMind/pkg/errors"
	"CampusMind/pkg/response"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) handleSubmitCheckIn(c *gin.Context) {
	var req service.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := models.CurrentUser(c)
	result, err := h.coordinator.SubmitCheckIn(c.Request.Context(), user, req)
	if err != nil {
		if errors.IsCode(err, errors.CodeInvalidInput) {
			response.FailWithStatus(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		// partial writes are possible; the status names what committed
		status := service.WriteStatus{}
		if result != nil {
			status = result.Status
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "check-in failed", gin.H{"status": status})
		return
	}
	response.Success(c, "Check-in analyzed and saved!", gin.H{
		"riskScore": result.RiskScore,
		"atRisk":    result.AtRisk,
		"status":    result.Status,
	})
}

func (h *Handlers) handleRecentCheckIns(c *gin.Context) {
	user := models.CurrentUser(c)
	checkIns, err := models.GetRecentCheckIns(h.db, user.ID, 30)
	if err != nil {
		response.Fail(c, "error", gin.H{"error": err.Error()})
		return
	}
	response.Success(c, "success", gin.H{"checkIns": checkIns})
}
