package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy 页面脚本均为内联；实时面板需要同源 WebSocket
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' 'unsafe-inline'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data:",
	"connect-src 'self' ws: wss:",
	"frame-ancestors 'none'",
	"form-action 'self'",
}, "; ")

// SecurityHeaders 安全 HTTP 头中间件
// 打卡页需要读取浏览器定位，geolocation 仅对同源开放
// hsts 为 true（Cookie 仅经 HTTPS 发送）时附加 Strict-Transport-Security
func SecurityHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(self)")
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000")
		}

		c.Next()
	}
}
