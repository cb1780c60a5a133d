package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "CampusMind/internal/handler"
	"CampusMind/internal/listeners"
	"CampusMind/internal/models"
	"CampusMind/internal/service"
	"CampusMind/pkg/cache"
	"CampusMind/pkg/config"
	"CampusMind/pkg/llm"
	"CampusMind/pkg/logger"
	"CampusMind/pkg/metrics"
	"CampusMind/pkg/notification"
	"CampusMind/pkg/scheduler"
	"CampusMind/pkg/sse"
	"CampusMind/pkg/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	// 1) 加载配置与日志
	if err := config.Load(); err != nil {
		panic(err)
	}
	cfg := config.GlobalConfig
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 2) 数据库
	db, err := util.InitDatabase(cfg.DBDriver, cfg.DSN, cfg.Mode != gin.ReleaseMode)
	if err != nil {
		logger.Error("init database failed", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.CheckIn{},
		&models.ChatMessage{},
		&models.RiskReport{},
		&models.EmergencyAlert{},
	); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}

	// 3) 依赖装配
	m := metrics.NewMetrics()

	classifier := llm.NewOpenAIClassifier(cfg.LLMApiKey, cfg.LLMBaseURL, cfg.LLMModel, logrus.New())

	store, err := cache.NewCache(cache.Config{
		Type:  cfg.CacheType,
		Redis: cache.RedisConfig{Addr: cfg.RedisAddr},
	})
	if err != nil {
		logger.Error("init cache failed", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	hub := sse.NewHub(15 * time.Second)
	coordinator := service.NewCoordinator(db, classifier, m, cfg.ReportCooldown)

	// 报告/警报落库后的通知扇出；短信客户端由部署方接入真实 SDK 后注入
	listeners.InitRiskListeners(hub, nil)

	// 4) 定时任务：每日待处理报告摘要
	cr := scheduler.NewCron(time.Local)
	if cfg.CounselorMail != "" {
		digest := service.NewDigestJob(db, notification.NewMailNotification(cfg.Mail), cfg.CounselorMail)
		if _, err := cr.Add(cfg.DigestCron, digest); err != nil {
			logger.Warn("schedule digest failed", zap.Error(err))
		}
	}
	cr.Start()
	defer cr.Stop()

	// 5) Gin
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(metrics.GinMiddleware(m))
	engine.Use(sessions.Sessions("campusmind", cookie.NewStore([]byte(cfg.SessionSecret))))

	handlers.NewHandlers(db, coordinator, hub, store).Register(engine)

	// 6) 启动与优雅退出
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down ...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
