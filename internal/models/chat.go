package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SenderStudent = "student"
	SenderSystem  = "system"

	StressLabelLow  = "Low"
	StressLabelHigh = "High"
)

// ChatMessage 按学生追加的聊天日志，只增不改
type ChatMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index"`
	Text        string    `json:"text" gorm:"size:4096"`
	Sender      string    `json:"sender" gorm:"size:16"`      // student / system
	StressLabel string    `json:"stressLabel" gorm:"size:16"` // Low / High
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CreateChatMessage 追加一条聊天记录
func CreateChatMessage(db *gorm.DB, msg *ChatMessage) error {
	return db.Create(msg).Error
}

// RecentStudentMessages 按时间倒序取学生最近的消息（评估窗口）
func RecentStudentMessages(db *gorm.DB, userID uint, limit int) ([]ChatMessage, error) {
	var msgs []ChatMessage
	if err := db.Where("user_id = ? AND sender = ?", userID, SenderStudent).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ChatHistory 按时间正序取会话历史
func ChatHistory(db *gorm.DB, userID uint, limit int) ([]ChatMessage, error) {
	var msgs []ChatMessage
	if err := db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
