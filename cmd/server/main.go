package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/api/handler"
	"github.com/asim5800/attendance-app/internal/api/router"
	"github.com/asim5800/attendance-app/internal/live"
	"github.com/asim5800/attendance-app/internal/repository"
	"github.com/asim5800/attendance-app/internal/service"
	"github.com/asim5800/attendance-app/internal/session"
	"github.com/asim5800/attendance-app/pkg/database"
	"github.com/asim5800/attendance-app/pkg/jwt"
	applogger "github.com/asim5800/attendance-app/pkg/logger"
	"github.com/asim5800/attendance-app/pkg/redis"
)

func main() {
	// 0. 预加载 .env（不存在时忽略）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "读取 .env 失败: %v\n", err)
		os.Exit(1)
	}

	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("ATTENDANCE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("session_store", cfg.Auth.SessionStore),
	)
	if keys := cfg.InsecureDefaults(); len(keys) > 0 {
		logger.Warn("正在使用默认凭据，请在部署前通过环境变量覆盖", zap.Strings("keys", keys))
	}

	// 3. 连接数据库并建表
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：未配置地址时跳过）
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Auth.SessionStore == "redis" {
				logger.Fatal("Redis 连接失败，无法使用 Redis 会话存储", zap.Error(err))
			}
			logger.Warn("Redis 连接失败，登录限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 会话存储与 Cookie 签名
	var sessions session.Store
	if cfg.Auth.SessionStore == "redis" {
		sessions = session.NewRedisStore(rdb, cfg.Auth.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.Auth.SessionTTL)
	}
	signer := jwt.NewManager(cfg.Auth.SecretKey, cfg.Auth.SessionTTL)

	// 6. 依赖注入: Repository → Service → Handler
	hub := live.NewHub(logger)
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, sessions, signer, hub, logger)
	if err != nil {
		logger.Fatal("初始化服务失败", zap.Error(err))
	}
	h := handler.NewHandler(cfg, svc, hub)

	// 7. 初始化路由
	engine, err := router.Setup(cfg, h, svc.Auth, rdb, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// WebSocket 连接已被劫持，Shutdown 不会等待它们
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
