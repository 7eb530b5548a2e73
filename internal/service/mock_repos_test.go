package service

import (
	"context"
	"sort"
	"sync"

	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/model"
	"github.com/asim5800/attendance-app/internal/repository"
)

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	mu        sync.Mutex
	records   []model.Attendance
	nextID    uint64
	createErr error
	listErr   error
	latest    string // 非空时覆盖 LatestTimestamp 的结果
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{nextID: 1}
}

func (m *mockAttendanceRepo) Create(_ context.Context, rec *model.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	rec.ID = m.nextID
	m.nextID++
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockAttendanceRepo) List(_ context.Context, order repository.SortOrder) ([]model.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]model.Attendance(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == repository.OrderDesc {
			a, b = b, a
		}
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (m *mockAttendanceRepo) LatestTimestamp(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest != "" {
		return m.latest, nil
	}
	var latest string
	for _, r := range m.records {
		if r.Timestamp > latest {
			latest = r.Timestamp
		}
	}
	return latest, nil
}

// newMockRepository 构造未绑定数据库的仓储聚合
func newMockRepository(att *mockAttendanceRepo) *repository.Repository {
	return &repository.Repository{Attendance: att}
}

// ── Mock Publisher ──

type mockPublisher struct {
	mu     sync.Mutex
	events []dto.PunchEvent
}

func (p *mockPublisher) Publish(event dto.PunchEvent) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

func (p *mockPublisher) Events() []dto.PunchEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dto.PunchEvent(nil), p.events...)
}
