package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asim5800/attendance-app/internal/service"
	"github.com/asim5800/attendance-app/pkg/response"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCSV 导出全部打卡记录为 CSV
// GET /admin/export
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportCSV, contentTypeCSV)
}

// ExportXLSX 导出全部打卡记录为 Excel
// GET /admin/export.xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportXLSX, contentTypeXLSX)
}

func (h *ExportHandler) serve(
	c *gin.Context,
	export func(ctx context.Context) (*bytes.Buffer, string, error),
	contentType string,
) {
	buf, filename, err := export(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
