package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/web"
)

// PageHandler 无需登录的静态页面
type PageHandler struct{}

// NewPageHandler 创建 PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index 打卡页
// GET / , GET /index.html
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageIndex, nil)
}

// Login 管理员登录页，?error=1 时显示错误提示
// GET /admin/login
func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageLogin, gin.H{"Error": c.Query("error") == "1"})
}
