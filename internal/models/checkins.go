package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckIn 每日打卡，一次提交一条，创建后不可变
type CheckIn struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index"`
	Mood        int       `json:"mood"`     // 1-5
	Stress      int       `json:"stress"`   // 1-5
	Sleep       int       `json:"sleep"`    // 1-5
	Academic    int       `json:"academic"` // 1-5
	Social      int       `json:"social"`   // 1-5
	JournalText string    `json:"journalText" gorm:"size:4096"`
	RiskScore   int       `json:"riskScore"` // 0-100，由评分器计算，不接受外部写入
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CreateCheckIn 持久化一次打卡
func CreateCheckIn(db *gorm.DB, checkIn *CheckIn) error {
	return db.Create(checkIn).Error
}

// GetRecentCheckIns 按时间倒序取最近的打卡记录
func GetRecentCheckIns(db *gorm.DB, userID uint, limit int) ([]CheckIn, error) {
	var checkIns []CheckIn
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}
