package handlers

import (
	"net/http"
	"time"

	"CampusMind/internal/models"
	"CampusMind/internal/risk"
	"CampusMind/pkg/errors"
	"CampusMind/pkg/response"
	"CampusMind/pkg/sse"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
)

// reportView 报告的对外视图，姓名在渲染时经披露策略替换
type reportView struct {
	UID           string    `json:"uid"`
	StudentName   string    `json:"studentName"`
	Department    string    `json:"department"`
	Severity      string    `json:"severity"`
	Reason        string    `json:"reason"`
	SourceMessage string    `json:"sourceMessage,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// handleListReports 列出风险报告。身份披露在读取时决定：以学生档案的
// 当前 is_at_risk 为准，而不是落库时的快照。
func (h *Handlers) handleListReports(c *gin.Context) {
	reports, err := models.ListReports(h.db, 100)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "list reports failed", nil)
		return
	}

	// 同一学生多条报告只查一次档案
	atRisk := make(map[uint]bool)
	views := make([]reportView, 0, len(reports))
	for _, r := range reports {
		flag, ok := atRisk[r.UserID]
		if !ok {
			if u, err := models.GetUserByID(h.db, r.UserID); err == nil {
				flag = u.IsAtRisk
			}
			atRisk[r.UserID] = flag
		}
		views = append(views, reportView{
			UID:           r.UID,
			StudentName:   risk.DisplayName(r.StudentName, r.Severity, flag),
			Department:    r.Department,
			Severity:      r.Severity,
			Reason:        r.Reason,
			SourceMessage: r.SourceMessage,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
		})
	}
	response.Success(c, "success", gin.H{"reports": views})
}

func (h *Handlers) handleOpenReport(c *gin.Context) {
	if err := models.OpenRiskReport(h.db, c.Param("uid")); err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			response.FailWithStatus(c, http.StatusNotFound, "report not found", nil)
			return
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "open report failed", nil)
		return
	}
	response.Success(c, "success", nil)
}

type dashboardStats struct {
	TotalStudents     int64 `json:"totalStudents"`
	AtRiskStudents    int64 `json:"atRiskStudents"`
	HighStressCount   int64 `json:"highStressCount"`
	PendingReports    int64 `json:"pendingReports"`
	ActiveEmergencies int64 `json:"activeEmergencies"`
}

// handleDashboardStats 仪表盘汇总，短缓存避免每次刷新都扫全表
func (h *Handlers) handleDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	if v, ok := h.cache.Get(ctx, dashboardStatsKey); ok {
		if stats, ok := v.(dashboardStats); ok {
			response.Success(c, "success", stats)
			return
		}
	}

	var stats dashboardStats
	if err := h.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.TotalStudents).Error; err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "stats failed", nil)
		return
	}
	h.db.Model(&models.User{}).Where("role = ? AND is_at_risk = ?", models.RoleStudent, true).Count(&stats.AtRiskStudents)
	h.db.Model(&models.User{}).Where("role = ? AND stress_score > ?", models.RoleStudent, risk.CriticalThreshold).Count(&stats.HighStressCount)
	h.db.Model(&models.RiskReport{}).Where("status = ?", models.ReportStatusPending).Count(&stats.PendingReports)
	h.db.Model(&models.EmergencyAlert{}).Where("status = ?", models.AlertStatusActive).Count(&stats.ActiveEmergencies)

	_ = h.cache.Set(ctx, dashboardStatsKey, stats, dashboardStatsTTL)
	response.Success(c, "success", stats)
}

// handleAtRiskStudents 压力得分超过临界阈值的学生。该名单只对辅导员开放，
// 学生均处于风险状态，按披露策略可显示真实身份。
func (h *Handlers) handleAtRiskStudents(c *gin.Context) {
	users, err := models.HighStressStudents(h.db, risk.CriticalThreshold)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "list students failed", nil)
		return
	}
	response.Success(c, "success", gin.H{"students": users})
}

func (h *Handlers) handleEmergencyLog(c *gin.Context) {
	alerts, err := models.RecentAlerts(h.db, 10)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "list emergencies failed", nil)
		return
	}
	response.Success(c, "success", gin.H{"alerts": alerts})
}

// handleAlertStream 新报告与紧急警报的实时推送
func (h *Handlers) handleAlertStream(c *gin.Context) {
	h.hub.Stream(c, uuid.NewString(), sse.TopicReports, sse.TopicEmergencies)
}
