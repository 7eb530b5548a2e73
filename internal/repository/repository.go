package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db         *gorm.DB
	Attendance AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Attendance: NewAttendanceRepo(db),
	}
}

// Transaction 在单个事务中执行 fn；fn 返回错误时回滚
// 未绑定数据库的聚合（单元测试桩）直接在自身上执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
