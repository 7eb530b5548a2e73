package model

// Action 打卡动作
type Action string

const (
	ActionIn  Action = "in"
	ActionOut Action = "out"
)

// Valid 是否为合法动作
func (a Action) Valid() bool {
	return a == ActionIn || a == ActionOut
}

// Attendance 打卡记录，对应 attendance 表
// 记录只追加：不存在更新与删除操作
type Attendance struct {
	ID         uint64   `gorm:"primaryKey;autoIncrement"        json:"id"`
	EmployeeID string   `gorm:"type:varchar(100);not null;index" json:"employee_id"`
	Action     Action   `gorm:"type:varchar(8);not null"        json:"action"`
	Timestamp  string   `gorm:"type:varchar(32);not null;index" json:"timestamp"`
	Latitude   *float64 `                                       json:"latitude"`
	Longitude  *float64 `                                       json:"longitude"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }
