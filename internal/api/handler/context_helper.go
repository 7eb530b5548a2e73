package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/session"
	"github.com/asim5800/attendance-app/pkg/response"
)

// SessionCookie 读取会话 Cookie，不存在时返回空串
func SessionCookie(c *gin.Context) string {
	v, err := c.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return v
}

// setSessionCookie 写入 HttpOnly 会话 Cookie；未配置 TTL 时为浏览器会话 Cookie
func setSessionCookie(c *gin.Context, cfg *config.AuthConfig, value string) {
	maxAge := 0
	if cfg.SessionTTL > 0 {
		maxAge = int(cfg.SessionTTL.Seconds())
	}
	c.SetSameSite(parseSameSite(cfg.Cookie.SameSite))
	c.SetCookie(session.CookieName, value, maxAge, "/", "", cfg.Cookie.Secure, true)
}

// clearSessionCookie 让浏览器立即丢弃会话 Cookie（Max-Age=0）
func clearSessionCookie(c *gin.Context, cfg *config.AuthConfig) {
	c.SetSameSite(parseSameSite(cfg.Cookie.SameSite))
	c.SetCookie(session.CookieName, "", -1, "/", "", cfg.Cookie.Secure, true)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}

// badRequestOrTooLarge 请求体超过 BodyLimit 时返回 413，否则返回 400 与 message
func badRequestOrTooLarge(c *gin.Context, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	response.BadRequest(c, message)
}
