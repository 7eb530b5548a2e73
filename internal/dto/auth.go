package dto

// ── 认证模块 DTO ──

// LoginRequest 管理员登录表单
// 字段缺失时按空串处理，由 Service 层统一判定为凭据错误
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	ClientIP string `form:"-"` // 由 Handler 填充，仅用于日志
}
