// Package session 管理员会话登记表。
//
// 会话只是一个不透明的随机 token：存在即表示已认证，不存在即未认证。
// 默认使用进程内存储，进程重启后全部会话失效；配置 Redis 后可在多实例间共享。
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// CookieName 承载会话的 Cookie 名
const CookieName = "session_id"

// tokenBytes 会话 token 的随机字节数（256 bit）
const tokenBytes = 32

// maxCreateAttempts 生成 token 时的碰撞重试上限
const maxCreateAttempts = 3

var ErrTokenCollision = errors.New("session token collision")

// Store 会话登记表接口
type Store interface {
	// Create 生成未被占用的新 token 并登记为已认证
	Create(ctx context.Context) (string, error)
	// IsAuthenticated token 当前是否已登记
	IsAuthenticated(ctx context.Context, token string) (bool, error)
	// Destroy 移除 token；重复或不存在的 token 不报错
	Destroy(ctx context.Context, token string) error
}

// newToken 生成十六进制编码的随机 token
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("生成会话 token 失败: %w", err)
	}
	return hex.EncodeToString(b), nil
}
