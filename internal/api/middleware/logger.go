package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthPath 探活请求只在 Debug 级别记录
const healthPath = "/health"

// Logger 请求日志中间件（基于 Zap 结构化日志）
// WebSocket 请求在连接关闭后才返回，latency 即连接时长
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", GetRequestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("请求处理失败", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("客户端错误", fields...)
		case c.IsWebsocket():
			logger.Info("WebSocket 连接结束", fields...)
		case path == healthPath:
			logger.Debug("健康检查", fields...)
		default:
			logger.Info("请求完成", fields...)
		}
	}
}
