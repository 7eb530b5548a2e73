package dto

import (
	"strconv"

	"github.com/asim5800/attendance-app/internal/model"
)

// ── 打卡模块 DTO ──

// PunchRequest 打卡请求
// 经纬度为指针：未提供时落库为 NULL
type PunchRequest struct {
	EmployeeID string   `json:"employee_id"`
	Action     string   `json:"action"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// PunchEvent 实时推送给管理端的打卡事件
type PunchEvent struct {
	ID         uint64   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	Action     string   `json:"action"`
	Timestamp  string   `json:"timestamp"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// NewPunchEvent 由打卡记录构造推送事件
func NewPunchEvent(rec *model.Attendance) PunchEvent {
	return PunchEvent{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Action:     string(rec.Action),
		Timestamp:  rec.Timestamp,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
	}
}

// AttendanceRow 管理后台表格中的一行（已格式化为展示文本）
type AttendanceRow struct {
	ID         uint64
	EmployeeID string
	Action     string
	Timestamp  string
	Latitude   string
	Longitude  string
}

// DashboardView 管理后台页面数据
type DashboardView struct {
	Total int64
	Rows  []AttendanceRow
}

// NewAttendanceRow 转换为展示行，缺失坐标显示为 "-"
func NewAttendanceRow(rec *model.Attendance) AttendanceRow {
	return AttendanceRow{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Action:     string(rec.Action),
		Timestamp:  rec.Timestamp,
		Latitude:   FormatCoordinate(rec.Latitude, "-"),
		Longitude:  FormatCoordinate(rec.Longitude, "-"),
	}
}

// FormatCoordinate 以最短可往返形式输出坐标，nil 时返回 missing
func FormatCoordinate(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
