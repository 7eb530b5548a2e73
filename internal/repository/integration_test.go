//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asim5800/attendance-app/internal/model"
	"github.com/asim5800/attendance-app/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// PostgreSQL 集成测试：go test -tags integration ./internal/repository/...
// ═══════════════════════════════════════════════════════════

func openPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=attendance password=attendance dbname=attendance_test sslmode=disable TimeZone=UTC"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("无法连接测试数据库: %v", err)
	}
	if err := db.AutoMigrate(&model.Attendance{}); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}
	return db
}

func TestPostgres_ListOrderingWithQuotedTimestamp(t *testing.T) {
	db := openPostgres(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	emp := fmt.Sprintf("IT-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Where("employee_id = ?", emp).Delete(&model.Attendance{})
	})

	for _, ts := range []string{"2026-01-01T09:00:02.000000", "2026-01-01T09:00:01.000000"} {
		if err := repo.Attendance.Create(ctx, &model.Attendance{EmployeeID: emp, Action: model.ActionIn, Timestamp: ts}); err != nil {
			t.Fatalf("Create 失败: %v", err)
		}
	}

	list, err := repo.Attendance.List(ctx, repository.OrderAsc)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}

	var mine []model.Attendance
	for _, r := range list {
		if r.EmployeeID == emp {
			mine = append(mine, r)
		}
	}
	if len(mine) != 2 || mine[0].Timestamp > mine[1].Timestamp {
		t.Errorf("升序排序错误: %+v", mine)
	}
}
