package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/internal/live"
)

// LiveHandler 实时推送 HTTP 处理器
type LiveHandler struct {
	hub *live.Hub
}

// NewLiveHandler 创建 LiveHandler
func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// Stream 升级为 WebSocket，推送新打卡记录直到连接断开
// GET /admin/live
func (h *LiveHandler) Stream(c *gin.Context) {
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		// 升级失败时响应已由 websocket 写出，这里只记录到请求日志
		_ = c.Error(err)
	}
}
