package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/asim5800/attendance-app/internal/model"
)

// RunMigrations 确保 attendance 表存在
// 表结构只有一张追加表，不做版本化迁移，直接使用 AutoMigrate
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&model.Attendance{}); err != nil {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	logger.Info("数据库迁移完成", zap.String("table", model.Attendance{}.TableName()))
	return nil
}
