package database

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/model"
)

func TestNewDB_SQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "attendance.db"),
	}

	db, err := NewDB(cfg, "info", zap.NewNop())
	if err != nil {
		t.Fatalf("NewDB 失败: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := RunMigrations(db, zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations 失败: %v", err)
	}
	// 重复执行应当幂等
	if err := RunMigrations(db, zap.NewNop()); err != nil {
		t.Fatalf("重复 RunMigrations 失败: %v", err)
	}

	if !db.Migrator().HasTable(&model.Attendance{}) {
		t.Fatal("attendance 表未创建")
	}
	for _, col := range []string{"id", "employee_id", "action", "timestamp", "latitude", "longitude"} {
		if !db.Migrator().HasColumn(&model.Attendance{}, col) {
			t.Errorf("缺少列 %s", col)
		}
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("SQLite 期望单连接, 实际 %d", got)
	}
}

func TestNewDB_UnknownDriver(t *testing.T) {
	if _, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, "info", zap.NewNop()); err == nil {
		t.Error("期望未知驱动报错")
	}
}
