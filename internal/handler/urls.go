package handlers

import (
	"CampusMind/internal/models"
	"CampusMind/pkg/config"
	"CampusMind/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	// Register Global Singleton DB
	r.Use(middleware.InjectDB(h.db))

	// Register System Module Routes
	h.registerSystemRoutes(r)

	// Register Business Module Routes
	h.registerAuthRoutes(r)
	h.registerStudentRoutes(r)
	h.registerCounselorRoutes(r)
}

// User Module
func (h *Handlers) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group(config.GlobalConfig.AuthPrefix)
	{
		auth.POST("/register", h.handleUserSignup)

		auth.POST("/login", h.handleUserSignin)

		auth.GET("/logout", models.AuthRequired, h.handleUserLogout)

		auth.GET("/info", models.AuthRequired, h.handleUserInfo)
	}
}

// Student ingestion Module
func (h *Handlers) registerStudentRoutes(r *gin.RouterGroup) {
	student := r.Group("/student", models.AuthRequired)
	{
		// daily check-in
		student.POST("/checkins", h.handleSubmitCheckIn)

		student.GET("/checkins", h.handleRecentCheckIns)

		// companion chat, classified per message
		student.POST("/chat", middleware.RateLimit(config.GlobalConfig.ChatRate), h.handleChatMessage)

		student.GET("/chat/history", h.handleChatHistory)

		// SOS / manual emergency; duplicate retries guarded per Idempotency-Key
		student.POST("/emergency", middleware.IdempotencyMiddleware(middleware.IdempotencyConfig{}), h.handleReportEmergency)
	}
}

// Counselor dashboard Module
func (h *Handlers) registerCounselorRoutes(r *gin.RouterGroup) {
	admin := r.Group("/counselor", models.AuthRequired, models.CounselorRequired)
	{
		admin.GET("/dashboard/stats", h.handleDashboardStats)

		admin.GET("/students/at-risk", h.handleAtRiskStudents)

		admin.GET("/reports", h.handleListReports)

		admin.POST("/reports/:uid/open", h.handleOpenReport)

		admin.GET("/emergencies", h.handleEmergencyLog)

		admin.POST("/emergencies/:uid/status", h.handleAdvanceAlert)

		// live report / emergency feed
		admin.GET("/stream", h.handleAlertStream)
	}
}
