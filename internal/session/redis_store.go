package session

import (
	"context"
	"fmt"
	"time"
)

// redisBackend RedisStore 所需的最小 Redis 能力，由 pkg/redis.Client 实现
type redisBackend interface {
	CreateSession(ctx context.Context, token string, ttl time.Duration) (bool, error)
	SessionExists(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
}

// RedisStore 基于 Redis 的会话存储，可在多实例间共享
type RedisStore struct {
	rdb redisBackend
	ttl time.Duration
}

// NewRedisStore 创建 Redis 会话存储；ttl<=0 表示会话不过期
func NewRedisStore(rdb redisBackend, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	for i := 0; i < maxCreateAttempts; i++ {
		token, err := newToken()
		if err != nil {
			return "", err
		}
		ok, err := s.rdb.CreateSession(ctx, token, s.ttl)
		if err != nil {
			return "", fmt.Errorf("写入会话失败: %w", err)
		}
		if ok {
			return token, nil
		}
	}
	return "", ErrTokenCollision
}

func (s *RedisStore) IsAuthenticated(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	ok, err := s.rdb.SessionExists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("查询会话失败: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rdb.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}
