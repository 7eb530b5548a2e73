package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/pkg/redis"
	"github.com/asim5800/attendance-app/pkg/response"
)

// RateLimit 基于 Redis 滑动窗口的按客户端 IP 限流中间件
// scope 区分不同的限流对象（如 "login"），limit<=0 或 rdb 为 nil 时直接放行
// Redis 出错时记录日志后降级放行，超限返回 429 并附带 Retry-After
func RateLimit(rdb *redis.Client, scope string, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	retryAfter := strconv.Itoa(int(window.Round(time.Second) / time.Second))

	return func(c *gin.Context) {
		key := "rate_limit:" + scope + ":" + c.ClientIP()
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("速率限制检查失败，已放行", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			logger.Warn("请求过于频繁", zap.String("scope", scope), zap.String("ip", c.ClientIP()))
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
