package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/pkg/redis"
)

// ── 通用契约测试 ──

type storeFactory func(t *testing.T, ttl time.Duration) Store

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(_ *testing.T, ttl time.Duration) Store { return NewMemoryStore(ttl) },
		"redis": func(t *testing.T, ttl time.Duration) Store {
			t.Helper()
			mr := miniredis.RunT(t)
			c, err := redis.NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
			if err != nil {
				t.Fatalf("连接 miniredis 失败: %v", err)
			}
			t.Cleanup(func() { _ = c.Close() })
			return NewRedisStore(c, ttl)
		},
	}
}

func TestStore_Lifecycle(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := factory(t, 0)
			ctx := context.Background()

			token, err := s.Create(ctx)
			if err != nil {
				t.Fatalf("Create 失败: %v", err)
			}
			if len(token) != 2*tokenBytes {
				t.Errorf("期望 token 长度 %d，实际 %d", 2*tokenBytes, len(token))
			}

			ok, err := s.IsAuthenticated(ctx, token)
			if err != nil || !ok {
				t.Fatalf("新建会话应已认证: ok=%v err=%v", ok, err)
			}

			if err := s.Destroy(ctx, token); err != nil {
				t.Fatalf("Destroy 失败: %v", err)
			}
			ok, _ = s.IsAuthenticated(ctx, token)
			if ok {
				t.Error("销毁后会话不应认证")
			}

			// 幂等：重复销毁、销毁不存在的 token 都不报错
			if err := s.Destroy(ctx, token); err != nil {
				t.Errorf("重复 Destroy 不应报错: %v", err)
			}
			if err := s.Destroy(ctx, "never-issued"); err != nil {
				t.Errorf("Destroy 未知 token 不应报错: %v", err)
			}
		})
	}
}

func TestStore_UnknownAndEmptyToken(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := factory(t, 0)
			for _, tok := range []string{"", "deadbeef"} {
				ok, err := s.IsAuthenticated(context.Background(), tok)
				if err != nil || ok {
					t.Errorf("IsAuthenticated(%q) = %v, %v", tok, ok, err)
				}
			}
		})
	}
}

func TestStore_TokensAreUnique(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := factory(t, 0)
			seen := make(map[string]bool)
			for i := 0; i < 200; i++ {
				tok, err := s.Create(context.Background())
				if err != nil {
					t.Fatal(err)
				}
				if seen[tok] {
					t.Fatalf("token 重复: %s", tok)
				}
				seen[tok] = true
			}
		})
	}
}

// ── 内存实现 ──

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	// 一个会话在并发的创建/销毁中必须保持存活
	keeper, _ := s.Create(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := s.Create(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			if ok, _ := s.IsAuthenticated(ctx, tok); !ok {
				t.Error("新建会话在并发下丢失")
			}
			_ = s.Destroy(ctx, tok)
		}()
	}
	wg.Wait()

	if ok, _ := s.IsAuthenticated(ctx, keeper); !ok {
		t.Error("无关会话被并发操作删除")
	}
	if s.Len() != 1 {
		t.Errorf("期望剩余 1 个会话，实际 %d", s.Len())
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	tok, _ := s.Create(context.Background())

	now = now.Add(59 * time.Second)
	if ok, _ := s.IsAuthenticated(context.Background(), tok); !ok {
		t.Error("未到期的会话应已认证")
	}

	now = now.Add(time.Second)
	if ok, _ := s.IsAuthenticated(context.Background(), tok); ok {
		t.Error("到期会话不应认证")
	}
	if s.Len() != 0 {
		t.Error("到期会话应被清理")
	}
}

func TestMemoryStore_AbandonedSessionsSweptOnCreate(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	// 登录后从未再访问的会话
	for i := 0; i < 5; i++ {
		if _, err := s.Create(ctx); err != nil {
			t.Fatal(err)
		}
	}
	now = now.Add(30 * time.Second)
	fresh, _ := s.Create(ctx)

	now = now.Add(45 * time.Second)
	latest, _ := s.Create(ctx)

	if s.Len() != 2 {
		t.Errorf("过期会话应在创建时清理，期望 2 个，实际 %d", s.Len())
	}
	for _, tok := range []string{fresh, latest} {
		if ok, _ := s.IsAuthenticated(ctx, tok); !ok {
			t.Error("未到期的会话不应被清理")
		}
	}
}

func TestMemoryStore_NoExpiryByDefault(t *testing.T) {
	s := NewMemoryStore(0)
	now := time.Now()
	s.now = func() time.Time { return now }

	tok, _ := s.Create(context.Background())
	now = now.Add(24 * 365 * time.Hour)
	if ok, _ := s.IsAuthenticated(context.Background(), tok); !ok {
		t.Error("未配置 TTL 时会话不应过期")
	}
}
