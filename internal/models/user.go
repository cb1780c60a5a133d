package models

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	UserField    = "user"
	DbField      = "db"
	SessionField = "userID"

	RoleStudent   = "student"
	RoleCounselor = "counselor"
)

// User 学生档案，聚合字段由每次事件幂等重算（last-write-wins）
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Email       string `json:"email" gorm:"size:128;uniqueIndex"`
	Password    string `json:"-" gorm:"size:128"` // 哈希后的口令
	DisplayName string `json:"displayName" gorm:"size:128"`
	Role        string `json:"role" gorm:"size:32;default:student"`
	Department  string `json:"department" gorm:"size:128"`

	// 风险档案聚合
	StressScore   int        `json:"stressScore"`            // 最近一次打卡得分 0-100
	IsAtRisk      bool       `json:"isAtRisk"`               // 最近一次评估是否越过风险阈值
	LastCheckInAt *time.Time `json:"lastCheckInAt,omitempty"`
	LastActiveAt  *time.Time `json:"lastActiveAt,omitempty"` // 最近一次聊天活动

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// GetUserByID 按ID获取用户
func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 按邮箱获取用户
func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileFromCheckIn 打卡后的档案聚合更新
func UpdateProfileFromCheckIn(db *gorm.DB, userID uint, score int, atRisk bool, at time.Time) error {
	return db.Model(&User{}).Where("id = ?", userID).Updates(map[string]any{
		"stress_score":     score,
		"is_at_risk":       atRisk,
		"last_check_in_at": at,
	}).Error
}

// UpdateProfileFromChat 聊天评估后的档案聚合更新
func UpdateProfileFromChat(db *gorm.DB, userID uint, atRisk bool, at time.Time) error {
	return db.Model(&User{}).Where("id = ?", userID).Updates(map[string]any{
		"is_at_risk":     atRisk,
		"last_active_at": at,
	}).Error
}

// HighStressStudents 压力得分超过阈值的学生，按得分倒序
func HighStressStudents(db *gorm.DB, threshold int) ([]User, error) {
	var users []User
	if err := db.Where("role = ? AND stress_score > ?", RoleStudent, threshold).
		Order("stress_score DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CurrentUser 取出 AuthRequired 放入上下文的用户
func CurrentUser(c *gin.Context) *User {
	if v, ok := c.Get(UserField); ok {
		if u, ok := v.(*User); ok {
			return u
		}
	}
	return nil
}

// AuthRequired 基于会话的访问控制
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	v := session.Get(SessionField)
	if v == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, ok := v.(uint)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	db := c.MustGet(DbField).(*gorm.DB)
	user, err := GetUserByID(db, userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(UserField, user)
	c.Next()
}

// CounselorRequired 仅辅导员可访问
func CounselorRequired(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || user.Role != RoleCounselor {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.Next()
}

// Login 写入会话
func Login(c *gin.Context, user *User) error {
	session := sessions.Default(c)
	session.Set(SessionField, user.ID)
	return session.Save()
}

// Logout 清除会话
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
