package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）；<=0 表示不限制
// 声明长度超限的请求直接返回 413；未声明长度的请求读取超限时由 Handler 识别 http.MaxBytesError
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large.")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
