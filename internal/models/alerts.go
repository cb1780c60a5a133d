package models

import (
	"time"

	"CampusMind/pkg/errors"
	"CampusMind/pkg/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlertKindSOS    = "SOS"
	AlertKindManual = "Manual"

	AlertStatusActive     = "Active"
	AlertStatusDispatched = "Dispatched"
	AlertStatusResolved   = "Resolved"

	// 缺省占位，触发时未携带上下文
	DefaultLocation = "Unknown Location"
	DefaultDetails  = "SOS Triggered"

	// SigEmergencyCreate 警报落库后触发（响应人短信、SSE 推送）
	SigEmergencyCreate = "emergency.create"
)

// EmergencyAlert SOS/手动紧急警报，状态只能由响应人向前推进
type EmergencyAlert struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UID          string     `json:"uid" gorm:"size:36;uniqueIndex"`
	UserID       uint       `json:"userId" gorm:"index"`
	StudentName  string     `json:"studentName" gorm:"size:128"`
	Location     string     `json:"location" gorm:"size:512"`
	Details      string     `json:"details" gorm:"size:1024"`
	Kind         string     `json:"kind" gorm:"size:16"`                  // SOS / Manual
	Status       string     `json:"status" gorm:"size:16;default:Active"` // Active -> Dispatched -> Resolved
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
}

// statusRank 状态序，只允许向前
var statusRank = map[string]int{
	AlertStatusActive:     0,
	AlertStatusDispatched: 1,
	AlertStatusResolved:   2,
}

// CreateEmergencyAlert 持久化警报并触发创建信号；缺省上下文用占位值
func CreateEmergencyAlert(db *gorm.DB, alert *EmergencyAlert) error {
	if alert.UID == "" {
		alert.UID = uuid.NewString()
	}
	if alert.Location == "" {
		alert.Location = DefaultLocation
	}
	if alert.Details == "" {
		alert.Details = DefaultDetails
	}
	if alert.Kind == "" {
		alert.Kind = AlertKindSOS
	}
	alert.Status = AlertStatusActive
	if err := db.Create(alert).Error; err != nil {
		return err
	}
	util.Sig().Emit(SigEmergencyCreate, alert)
	return nil
}

// AdvanceAlertStatus 推进警报状态，拒绝回退或跳跃以外的非法迁移
func AdvanceAlertStatus(db *gorm.DB, uid, next string) (*EmergencyAlert, error) {
	nextRank, ok := statusRank[next]
	if !ok {
		return nil, errors.WithCodef(errors.CodeTransition, "unknown alert status %q", next)
	}
	var alert EmergencyAlert
	if err := db.Where("uid = ?", uid).First(&alert).Error; err != nil {
		return nil, errors.WrapCode(err, errors.CodeNotFound, "alert not found")
	}
	if nextRank != statusRank[alert.Status]+1 {
		return nil, errors.WithCodef(errors.CodeTransition, "illegal transition %s -> %s", alert.Status, next)
	}
	updates := map[string]any{"status": next}
	if next == AlertStatusDispatched {
		now := time.Now()
		updates["dispatched_at"] = now
		alert.DispatchedAt = &now
	}
	if err := db.Model(&alert).Updates(updates).Error; err != nil {
		return nil, err
	}
	alert.Status = next
	return &alert, nil
}

// ActiveAlerts 当前未解决的警报
func ActiveAlerts(db *gorm.DB) ([]EmergencyAlert, error) {
	var alerts []EmergencyAlert
	if err := db.Where("status = ?", AlertStatusActive).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// RecentAlerts 最近的警报历史
func RecentAlerts(db *gorm.DB, limit int) ([]EmergencyAlert, error) {
	var alerts []EmergencyAlert
	if err := db.Order("created_at DESC").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
