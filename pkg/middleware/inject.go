package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DbField = "db"

// InjectDB 将全局 DB 注入请求上下文
func InjectDB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DbField, db)
		c.Next()
	}
}
