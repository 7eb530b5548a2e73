package model

import "time"

// TimestampLayout 打卡时间的存储格式（UTC，微秒精度，定长，可按字典序排序）
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp 将时间转换为 UTC 存储文本
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp 解析存储文本为 UTC 时间
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.UTC)
}
