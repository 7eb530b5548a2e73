package service

import (
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/repository"
	"github.com/asim5800/attendance-app/internal/session"
	"github.com/asim5800/attendance-app/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	sessions session.Store,
	signer *jwt.Manager,
	publisher Publisher,
	logger *zap.Logger,
) (*Service, error) {
	auth, err := NewAuthService(&cfg.Auth, sessions, signer, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		Auth:       auth,
		Attendance: NewAttendanceService(repo, publisher, logger),
		Export:     NewExportService(repo, logger),
	}, nil
}
