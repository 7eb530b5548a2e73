package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials 管理员用户名或密码错误（对外不区分具体原因）
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError 打卡参数校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError 创建 ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation 判断 err 链上是否存在 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
