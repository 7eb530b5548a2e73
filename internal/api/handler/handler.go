package handler

import (
	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/live"
	"github.com/asim5800/attendance-app/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Page   *PageHandler
	Punch  *PunchHandler
	Auth   *AuthHandler
	Admin  *AdminHandler
	Export *ExportHandler
	Live   *LiveHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service, hub *live.Hub) *Handler {
	return &Handler{
		Page:   NewPageHandler(),
		Punch:  NewPunchHandler(svc.Attendance),
		Auth:   NewAuthHandler(svc.Auth, &cfg.Auth),
		Admin:  NewAdminHandler(svc.Attendance),
		Export: NewExportHandler(svc.Export),
		Live:   NewLiveHandler(hub),
	}
}
