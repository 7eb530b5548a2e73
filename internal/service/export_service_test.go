package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService(records ...model.Attendance) (*exportService, *mockAttendanceRepo) {
	repo := newMockAttendanceRepo()
	for i := range records {
		_ = repo.Create(context.Background(), &records[i])
	}
	svc := NewExportService(newMockRepository(repo), zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC) }
	return svc, repo
}

// 与手工流程一致的两条记录：先带坐标打卡上班，再不带坐标打卡下班
func sampleRecords() []model.Attendance {
	return []model.Attendance{
		{EmployeeID: "E1", Action: model.ActionIn, Timestamp: "2026-04-05T01:00:00.000000", Latitude: f64(1.5), Longitude: f64(2.5)},
		{EmployeeID: "E1", Action: model.ActionOut, Timestamp: "2026-04-05T09:00:00.000000"},
	}
}

// ── ExportCSV ──

func TestExportService_ExportCSV(t *testing.T) {
	svc, _ := setupTestExportService(sampleRecords()...)

	buf, filename, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportCSV 失败: %v", err)
	}
	if filename != "attendance_20260405060708.csv" {
		t.Errorf("文件名错误: %s", filename)
	}

	want := "Employee ID,Action,Timestamp (UTC),Latitude,Longitude\n" +
		"E1,in,2026-04-05T01:00:00.000000,1.5,2.5\n" +
		"E1,out,2026-04-05T09:00:00.000000,,\n"
	if buf.String() != want {
		t.Errorf("CSV 内容错误:\n%s", buf.String())
	}
}

func TestExportService_ExportCSV_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Employee ID,Action,Timestamp (UTC),Latitude,Longitude\n" {
		t.Errorf("空表应只有表头: %q", buf.String())
	}
}

func TestExportService_ExportCSV_QuotesSpecialCharacters(t *testing.T) {
	svc, _ := setupTestExportService(model.Attendance{
		EmployeeID: `Doe, "JD"`,
		Action:     model.ActionIn,
		Timestamp:  "2026-04-05T01:00:00.000000",
	})

	buf, _, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("导出内容不是合法 CSV: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != `Doe, "JD"` || len(rows[1]) != 5 {
		t.Errorf("特殊字符未正确转义: %q", rows)
	}
}

func TestExportService_ExportCSV_AscendingOrder(t *testing.T) {
	recs := sampleRecords()
	recs[0], recs[1] = recs[1], recs[0] // 以倒序写入
	svc, _ := setupTestExportService(recs...)

	buf, _, _ := svc.ExportCSV(context.Background())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[1], "E1,in,") || !strings.HasPrefix(lines[2], "E1,out,") {
		t.Errorf("导出应按时间升序: %v", lines)
	}
}

func TestExportService_StoreFailure(t *testing.T) {
	svc, repo := setupTestExportService()
	boom := errors.New("db down")
	repo.listErr = boom

	if _, _, err := svc.ExportCSV(context.Background()); !errors.Is(err, boom) {
		t.Errorf("CSV: 期望透传存储错误，实际 %v", err)
	}
	if _, _, err := svc.ExportXLSX(context.Background()); !errors.Is(err, boom) {
		t.Errorf("XLSX: 期望透传存储错误，实际 %v", err)
	}
}

// ── ExportXLSX ──

func TestExportService_ExportXLSX(t *testing.T) {
	svc, _ := setupTestExportService(sampleRecords()...)

	buf, filename, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX 失败: %v", err)
	}
	if !regexp.MustCompile(`^attendance_\d{14}\.xlsx$`).MatchString(filename) {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("打开 Excel 失败: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Attendance" {
		t.Errorf("Sheet 列表错误: %v", sheets)
	}

	rows, err := f.GetRows("Attendance")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（含表头），实际 %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Employee ID,Action,Timestamp (UTC),Latitude,Longitude" {
		t.Errorf("表头错误: %v", rows[0])
	}
	if strings.Join(rows[1], ",") != "E1,in,2026-04-05T01:00:00.000000,1.5,2.5" {
		t.Errorf("第一行错误: %v", rows[1])
	}
	// 缺失坐标留空（GetRows 可能截掉行尾空单元格）
	if len(rows[2]) < 3 || strings.Join(rows[2][:3], ",") != "E1,out,2026-04-05T09:00:00.000000" {
		t.Fatalf("第二行错误: %v", rows[2])
	}
	for _, v := range rows[2][3:] {
		if v != "" {
			t.Errorf("缺失坐标应为空: %v", rows[2])
		}
	}
}
