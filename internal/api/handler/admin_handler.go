package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/repository"
	"github.com/asim5800/attendance-app/internal/service"
	"github.com/asim5800/attendance-app/pkg/response"
	"github.com/asim5800/attendance-app/web"
)

// AdminHandler 管理后台 HTTP 处理器
type AdminHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(attendanceSvc service.AttendanceService) *AdminHandler {
	return &AdminHandler{attendanceSvc: attendanceSvc}
}

// Dashboard 管理后台首页，记录按时间倒序
// GET /admin
//
// 总数取自同一次查询的结果，与表格行数一致
func (h *AdminHandler) Dashboard(c *gin.Context) {
	records, err := h.attendanceSvc.ListAll(c.Request.Context(), repository.OrderDesc)
	if err != nil {
		response.InternalError(c)
		return
	}

	view := dto.DashboardView{Total: int64(len(records)), Rows: make([]dto.AttendanceRow, 0, len(records))}
	for i := range records {
		view.Rows = append(view.Rows, dto.NewAttendanceRow(&records[i]))
	}
	c.HTML(http.StatusOK, web.PageDashboard, view)
}
