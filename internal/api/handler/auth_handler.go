package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/service"
	apperrors "github.com/asim5800/attendance-app/pkg/errors"
	"github.com/asim5800/attendance-app/pkg/response"
)

const (
	pathAdmin       = "/admin"
	pathLogin       = "/admin/login"
	pathLoginFailed = "/admin/login?error=1"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 管理员登录
// POST /admin/login
//
// 成功：写入会话 Cookie 并跳转 /admin；失败：跳回登录页并带 error=1，不透露具体原因
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		response.Redirect(c, pathLoginFailed)
		return
	}
	req.ClientIP = c.ClientIP()

	value, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.Redirect(c, pathLoginFailed)
			return
		}
		response.InternalError(c)
		return
	}

	setSessionCookie(c, h.cfg, value)
	response.Redirect(c, pathAdmin)
}

// Logout 管理员登出，无论 Cookie 是否有效都清除并跳转登录页
// GET /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if value := SessionCookie(c); value != "" {
		// 注销失败已由 Service 记录日志，不影响清除 Cookie
		_ = h.authSvc.Logout(c.Request.Context(), value)
	}
	clearSessionCookie(c, h.cfg)
	response.Redirect(c, pathLogin)
}
