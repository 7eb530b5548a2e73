package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/api/handler"
	"github.com/asim5800/attendance-app/internal/api/middleware"
	"github.com/asim5800/attendance-app/internal/service"
	"github.com/asim5800/attendance-app/pkg/redis"
	"github.com/asim5800/attendance-app/pkg/response"
	"github.com/asim5800/attendance-app/web"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时登录限流降级为放行
func Setup(cfg *config.Config, h *handler.Handler, authSvc service.AuthService, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// 路径存在但方法不匹配时同样返回 404
	r.HandleMethodNotAllowed = false
	// 登录限流按客户端 IP 计数
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("无效的 server.trusted_proxies: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("加载页面模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders(cfg.Auth.Cookie.Secure))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 员工打卡（无需认证） ──
	r.GET("/", h.Page.Index)
	r.GET("/index.html", h.Page.Index)
	r.POST("/punch", h.Punch.Punch)

	// ── 管理后台 ──
	admin := r.Group("/admin")
	{
		// 无需认证
		admin.GET("/login", h.Page.Login)
		admin.POST("/login",
			middleware.RateLimit(rdb, "login", cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
			h.Auth.Login,
		)
		admin.GET("/logout", h.Auth.Logout)

		// 需要认证
		authorized := admin.Group("")
		authorized.Use(middleware.SessionAuth(authSvc))
		{
			authorized.GET("", h.Admin.Dashboard)
			authorized.GET("/export", h.Export.ExportCSV)
			authorized.GET("/export.xlsx", h.Export.ExportXLSX)
			authorized.GET("/live", h.Live.Stream)
		}
	}

	r.NoRoute(response.NotFound)

	return r, nil
}
