package models

import (
	"time"

	"CampusMind/pkg/errors"
	"CampusMind/pkg/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SeverityHigh      = "High"
	SeverityCritical  = "Critical"
	SeverityDangerous = "Dangerous"
	SeveritySOS       = "SOS"

	ReportStatusPending = "pending"
	ReportStatusOpen    = "open"

	// SigRiskReportCreate 报告落库后触发（辅导员邮件、SSE 推送）
	SigRiskReportCreate = "risk_report.create"
)

// RiskReport 审计记录，只增不删；同一学生可存在多条（不做去重，见 DESIGN.md）
type RiskReport struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UID           string    `json:"uid" gorm:"size:36;uniqueIndex"` // 对外暴露的稳定ID
	UserID        uint      `json:"userId" gorm:"index"`
	StudentName   string    `json:"studentName" gorm:"size:128"` // 写入时的显示名快照，展示前仍需经披露策略
	Department    string    `json:"department" gorm:"size:128"`
	Severity      string    `json:"severity" gorm:"size:16;index"` // High / Critical / Dangerous
	Reason        string    `json:"reason" gorm:"size:1024"`
	SourceMessage string    `json:"sourceMessage,omitempty" gorm:"size:4096"` // 触发报告的原始文本
	Status        string    `json:"status" gorm:"size:16;default:pending"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CreateRiskReport 持久化一条风险报告并触发创建信号
func CreateRiskReport(db *gorm.DB, report *RiskReport) error {
	if report.UID == "" {
		report.UID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = ReportStatusPending
	}
	if err := db.Create(report).Error; err != nil {
		return err
	}
	util.Sig().Emit(SigRiskReportCreate, report)
	return nil
}

// HasReportSince 学生在 since 之后是否已有报告（冷却窗口判断）
func HasReportSince(db *gorm.DB, userID uint, since time.Time) (bool, error) {
	var count int64
	err := db.Model(&RiskReport{}).
		Where("user_id = ? AND created_at > ?", userID, since).
		Count(&count).Error
	return count > 0, err
}

// ListReports 按时间倒序列出报告
func ListReports(db *gorm.DB, limit int) ([]RiskReport, error) {
	var reports []RiskReport
	if err := db.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListPendingReports 待处理报告
func ListPendingReports(db *gorm.DB) ([]RiskReport, error) {
	var reports []RiskReport
	if err := db.Where("status = ?", ReportStatusPending).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// OpenRiskReport 辅导员认领报告 pending -> open
func OpenRiskReport(db *gorm.DB, uid string) error {
	res := db.Model(&RiskReport{}).
		Where("uid = ? AND status = ?", uid, ReportStatusPending).
		Update("status", ReportStatusOpen)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.WithCodef(errors.CodeNotFound, "no pending report %q", uid)
	}
	return nil
}
