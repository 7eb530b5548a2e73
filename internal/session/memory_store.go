package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内会话存储
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time // token → 过期时间（零值表示不过期）
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore 创建内存会话存储；ttl<=0 表示会话不过期
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context) (string, error) {
	for i := 0; i < maxCreateAttempts; i++ {
		token, err := newToken()
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		if _, taken := s.sessions[token]; !taken {
			var expiresAt time.Time
			if s.ttl > 0 {
				now := s.now()
				s.sweepLocked(now)
				expiresAt = now.Add(s.ttl)
			}
			s.sessions[token] = expiresAt
			s.mu.Unlock()
			return token, nil
		}
		s.mu.Unlock()
	}
	return "", ErrTokenCollision
}

// sweepLocked 清理已过期但未再被访问的会话，调用方需持有写锁
func (s *MemoryStore) sweepLocked(now time.Time) {
	for token, expiresAt := range s.sessions {
		if !expiresAt.IsZero() && !now.Before(expiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *MemoryStore) IsAuthenticated(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	s.mu.RLock()
	expiresAt, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !expiresAt.IsZero() && !s.now().Before(expiresAt) {
		s.mu.Lock()
		// 重新确认，避免删掉期间被替换的条目
		if cur, still := s.sessions[token]; still && cur.Equal(expiresAt) {
			delete(s.sessions, token)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Len 当前登记的会话数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
