package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/model"
	"github.com/asim5800/attendance-app/internal/repository"
	apperrors "github.com/asim5800/attendance-app/pkg/errors"
)

// ── 打卡模块提示文案（直接返回给客户端） ──

const (
	MsgPunchFieldsRequired = "Employee ID and action are required."
	MsgPunchInvalidAction  = "Invalid action specified."
)

// Publisher 新打卡记录的订阅方（如实时推送 Hub）
type Publisher interface {
	Publish(event dto.PunchEvent)
}

// AttendanceService 打卡业务接口
type AttendanceService interface {
	// Punch 校验并追加一条打卡记录，返回落库后的记录（含 id 与时间戳）
	Punch(ctx context.Context, req *dto.PunchRequest) (*model.Attendance, error)
	// ListAll 返回全部记录，按时间戳排序，相同时间戳按 id 排序
	ListAll(ctx context.Context, order repository.SortOrder) ([]model.Attendance, error)
}

type attendanceService struct {
	repo      *repository.Repository
	publisher Publisher
	logger    *zap.Logger

	// mu 串行化写入，保证 id 顺序与时间戳顺序一致
	mu     sync.Mutex
	last   time.Time
	loaded bool
	now    func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例；publisher 可为 nil
func NewAttendanceService(repo *repository.Repository, publisher Publisher, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *attendanceService) Punch(ctx context.Context, req *dto.PunchRequest) (*model.Attendance, error) {
	// 1. 参数校验
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" || req.Action == "" {
		return nil, apperrors.NewValidationError("employee_id", MsgPunchFieldsRequired)
	}
	action := model.Action(req.Action)
	if !action.Valid() {
		return nil, apperrors.NewValidationError("action", MsgPunchInvalidAction)
	}

	rec := &model.Attendance{
		EmployeeID: employeeID,
		Action:     action,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	// 2. 分配时间戳并落库（持锁）
	if err := s.insert(ctx, rec); err != nil {
		s.logger.Error("写入打卡记录失败",
			zap.String("employee_id", employeeID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("打卡成功",
		zap.Uint64("id", rec.ID),
		zap.String("employee_id", rec.EmployeeID),
		zap.String("action", string(rec.Action)),
	)

	// 3. 通知订阅方
	if s.publisher != nil {
		s.publisher.Publish(dto.NewPunchEvent(rec))
	}
	return rec, nil
}

func (s *attendanceService) insert(ctx context.Context, rec *model.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.nextTimestamp(ctx)
	if err != nil {
		return err
	}
	rec.Timestamp = model.FormatTimestamp(ts)

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Attendance.Create(ctx, rec)
	})
	if err != nil {
		return fmt.Errorf("写入打卡记录失败: %w", err)
	}

	// 提交成功后才推进
	s.last = ts
	return nil
}

// nextTimestamp 返回严格晚于上一条记录的 UTC 时间（微秒精度）
// 调用方须持有 s.mu
func (s *attendanceService) nextTimestamp(ctx context.Context) (time.Time, error) {
	if !s.loaded {
		latest, err := s.repo.Attendance.LatestTimestamp(ctx)
		if err != nil {
			return time.Time{}, fmt.Errorf("查询最新打卡时间失败: %w", err)
		}
		if latest != "" {
			last, err := model.ParseTimestamp(latest)
			if err != nil {
				return time.Time{}, fmt.Errorf("解析最新打卡时间 %q 失败: %w", latest, err)
			}
			s.last = last
		}
		s.loaded = true
	}

	ts := s.now().UTC().Truncate(time.Microsecond)
	if !ts.After(s.last) {
		ts = s.last.Add(time.Microsecond)
	}
	return ts, nil
}

func (s *attendanceService) ListAll(ctx context.Context, order repository.SortOrder) ([]model.Attendance, error) {
	records, err := s.repo.Attendance.List(ctx, order)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, err
	}
	return records, nil
}
