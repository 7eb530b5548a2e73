package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/model"
	"github.com/asim5800/attendance-app/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// exportHeader 导出文件表头，CSV 与 Excel 共用
var exportHeader = []string{"Employee ID", "Action", "Timestamp (UTC)", "Latitude", "Longitude"}

const exportSheet = "Attendance"

// ExportService 导出业务接口
//
// 两种格式内容一致：表头 + 全部记录（按时间戳升序），缺失坐标留空。
// 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportCSV 导出为 CSV
	ExportCSV(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportXLSX 导出为 Excel
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) ExportCSV(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.Attendance.List(ctx, repository.OrderAsc)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", s.generateFailed("csv", err)
	}
	for i := range records {
		if err := w.Write(exportRow(&records[i])); err != nil {
			return nil, "", s.generateFailed("csv", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", s.generateFailed("csv", err)
	}

	return buf, s.filename("csv"), nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX 导出为单个 Sheet "Attendance"，首行为表头
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.Attendance.List(ctx, repository.OrderAsc)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", s.generateFailed("xlsx", err)
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(exportSheet, "A", "A", 16)
	f.SetColWidth(exportSheet, "B", "B", 8)
	f.SetColWidth(exportSheet, "C", "C", 28)
	f.SetColWidth(exportSheet, "D", "E", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// 表头
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, "", s.generateFailed("xlsx", err)
	}
	f.SetCellStyle(exportSheet, "A1", "E1", headerStyle)

	// 数据行：坐标以数值写入，缺失时留空
	for i := range records {
		rec := &records[i]
		row := []interface{}{rec.EmployeeID, string(rec.Action), rec.Timestamp, nil, nil}
		if rec.Latitude != nil {
			row[3] = *rec.Latitude
		}
		if rec.Longitude != nil {
			row[4] = *rec.Longitude
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, "", s.generateFailed("xlsx", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed("xlsx", err)
	}
	return buf, s.filename("xlsx"), nil
}

// ── 辅助函数 ──

func exportRow(rec *model.Attendance) []string {
	return []string{
		rec.EmployeeID,
		string(rec.Action),
		rec.Timestamp,
		dto.FormatCoordinate(rec.Latitude, ""),
		dto.FormatCoordinate(rec.Longitude, ""),
	}
}

// filename attendance_YYYYMMDDHHMMSS.<ext>（UTC）
func (s *exportService) filename(ext string) string {
	return fmt.Sprintf("attendance_%s.%s", s.now().UTC().Format("20060102150405"), ext)
}

func (s *exportService) generateFailed(format string, err error) error {
	s.logger.Error("生成导出文件失败", zap.String("format", format), zap.Error(err))
	return fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
}
