package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/internal/service"
	"github.com/asim5800/attendance-app/internal/session"
	"github.com/asim5800/attendance-app/pkg/response"
)

// LoginPath 未登录访问受保护页面时的跳转目标
const LoginPath = "/admin/login"

// SessionAuth 会话认证中间件
// 从 Cookie session_id 中取出签名值并校验会话是否登记；未认证时 302 到登录页
func SessionAuth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Cookie(session.CookieName)

		ok, err := authSvc.Authenticate(c.Request.Context(), value)
		if err != nil {
			response.InternalError(c)
			c.Abort()
			return
		}
		if !ok {
			response.Redirect(c, LoginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}
