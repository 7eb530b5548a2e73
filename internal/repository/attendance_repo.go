package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asim5800/attendance-app/internal/model"
)

// SortOrder 打卡记录排序方向
type SortOrder int

const (
	OrderAsc SortOrder = iota
	OrderDesc
)

// AttendanceRepository 打卡记录数据访问接口（只追加，无更新/删除）
type AttendanceRepository interface {
	Create(ctx context.Context, rec *model.Attendance) error
	List(ctx context.Context, order SortOrder) ([]model.Attendance, error)
	// LatestTimestamp 返回最新记录的时间戳文本，无记录时返回空串
	LatestTimestamp(ctx context.Context) (string, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, rec *model.Attendance) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// List 按 timestamp 排序，相同时间戳按 id（插入顺序）排序
func (r *attendanceRepo) List(ctx context.Context, order SortOrder) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).Order(byTimestamp(order == OrderDesc)).Find(&records).Error
	return records, err
}

// LatestTimestamp 空表是正常状态，用 Find 而非 Take 以免产生 ErrRecordNotFound 日志
func (r *attendanceRepo) LatestTimestamp(ctx context.Context) (string, error) {
	var recs []model.Attendance
	err := r.db.WithContext(ctx).
		Select("timestamp").
		Order(byTimestamp(true)).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", nil
	}
	return recs[0].Timestamp, nil
}

// byTimestamp 生成带引号的排序子句（timestamp 在部分数据库中是关键字）
func byTimestamp(desc bool) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "timestamp"}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}}
}
