package config

import (
	"CampusMind/pkg/logger"
	"CampusMind/pkg/notification"
	"CampusMind/pkg/util"
	"log"
	"os"
	"time"
)

// config/config.go
type Config struct {
	DBDriver      string `env:"DB_DRIVER"`
	DSN           string `env:"DSN"`
	Log           logger.LogConfig
	Mail          notification.MailConfig
	Addr          string `env:"ADDR"`
	Mode          string `env:"MODE"`
	APIPrefix     string `env:"API_PREFIX"`
	AdminPrefix   string `env:"ADMIN_PREFIX"`
	AuthPrefix    string `env:"AUTH_PREFIX"`
	SessionSecret string `env:"SESSION_SECRET"`

	// completion service
	LLMApiKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMModel   string `env:"LLM_MODEL"`

	// per-subject risk report cooldown, 0 disables dedup
	ReportCooldown time.Duration `env:"REPORT_COOLDOWN"`

	// chat endpoint rate limit, e.g. "30-M"
	ChatRate string `env:"CHAT_RATE"`

	// dashboard cache
	CacheType string `env:"CACHE_TYPE"`
	RedisAddr string `env:"REDIS_ADDR"`

	// daily pending-report digest
	DigestCron string `env:"DIGEST_CRON"`

	// escalation notification targets
	CounselorMail  string `env:"COUNSELOR_MAIL"`
	ResponderPhone string `env:"RESPONDER_PHONE"`
}

var GlobalConfig *Config

func Load() error {
	// 1. 根据环境加载 .env 文件
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development" // 默认使用开发环境
	}
	err := util.LoadEnv(env)
	if err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	// 2. 加载全局配置
	GlobalConfig = &Config{
		DBDriver:      util.GetEnv("DB_DRIVER"),
		DSN:           util.GetEnv("DSN"),
		Addr:          util.GetEnvDefault("ADDR", ":8080"),
		Mode:          util.GetEnv("MODE"),
		APIPrefix:     util.GetEnvDefault("API_PREFIX", "/api"),
		AdminPrefix:   util.GetEnv("ADMIN_PREFIX"),
		AuthPrefix:    util.GetEnvDefault("AUTH_PREFIX", "/auth"),
		SessionSecret: util.GetEnv("SESSION_SECRET"),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
		Mail: notification.MailConfig{
			Host:     util.GetEnv("MAIL_HOST"),
			Username: util.GetEnv("MAIL_USERNAME"),
			Password: util.GetEnv("MAIL_PASSWORD"),
			Port:     int(util.GetIntEnv("MAIL_PORT")),
			From:     util.GetEnv("MAIL_FROM"),
		},
		LLMApiKey:      util.GetEnv("LLM_API_KEY"),
		LLMBaseURL:     util.GetEnv("LLM_BASE_URL"),
		LLMModel:       util.GetEnvDefault("LLM_MODEL", "gpt-4o-mini"),
		ReportCooldown: util.GetDurationEnv("REPORT_COOLDOWN"),
		ChatRate:       util.GetEnvDefault("CHAT_RATE", "30-M"),
		CacheType:      util.GetEnvDefault("CACHE_TYPE", "local"),
		RedisAddr:      util.GetEnv("REDIS_ADDR"),
		DigestCron:     util.GetEnvDefault("DIGEST_CRON", "0 8 * * *"),
		CounselorMail:  util.GetEnv("COUNSELOR_MAIL"),
		ResponderPhone: util.GetEnv("RESPONDER_PHONE"),
	}
	return nil
}
