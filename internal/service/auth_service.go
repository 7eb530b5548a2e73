package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/asim5800/attendance-app/config"
	"github.com/asim5800/attendance-app/internal/dto"
	"github.com/asim5800/attendance-app/internal/session"
	apperrors "github.com/asim5800/attendance-app/pkg/errors"
	"github.com/asim5800/attendance-app/pkg/jwt"
)

// AuthService 管理员认证业务接口
type AuthService interface {
	// Login 校验凭据，成功时登记会话并返回签名后的 Cookie 值
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	// Logout 注销 Cookie 对应的会话；无效或重复注销不报错
	Logout(ctx context.Context, cookieValue string) error
	// Authenticate Cookie 是否对应一个已登记的会话
	Authenticate(ctx context.Context, cookieValue string) (bool, error)
}

type authService struct {
	username     []byte
	passwordHash []byte
	sessions     session.Store
	signer       *jwt.Manager
	logger       *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// 配置了 admin_password_hash 时直接使用；否则在启动时对明文密码做一次 bcrypt
func NewAuthService(
	cfg *config.AuthConfig,
	sessions session.Store,
	signer *jwt.Manager,
	logger *zap.Logger,
) (AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) > 0 {
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("admin_password_hash 不是有效的 bcrypt 哈希: %w", err)
		}
	} else {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("生成管理员密码哈希失败: %w", err)
		}
	}

	return &authService{
		username:     []byte(cfg.AdminUsername),
		passwordHash: hash,
		sessions:     sessions,
		signer:       signer,
		logger:       logger,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	// 1. 校验凭据：用户名不匹配时仍执行 bcrypt，避免耗时差异
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), s.username) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		s.logger.Warn("管理员登录失败", zap.String("ip", req.ClientIP))
		return "", apperrors.ErrInvalidCredentials
	}

	// 2. 登记会话
	token, err := s.sessions.Create(ctx)
	if err != nil {
		s.logger.Error("创建会话失败", zap.Error(err))
		return "", err
	}

	// 3. 签名为 Cookie 值
	value, err := s.signer.SignSession(token, req.Username)
	if err != nil {
		s.logger.Error("签名会话 Cookie 失败", zap.Error(err))
		_ = s.sessions.Destroy(ctx, token)
		return "", err
	}

	s.logger.Info("管理员登录成功", zap.String("ip", req.ClientIP))
	return value, nil
}

func (s *authService) Logout(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}
	token, err := s.signer.ParseSession(cookieValue)
	if err != nil {
		// 伪造或过期的 Cookie 没有可注销的会话
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		s.logger.Error("注销会话失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, cookieValue string) (bool, error) {
	if cookieValue == "" {
		return false, nil
	}
	token, err := s.signer.ParseSession(cookieValue)
	if err != nil {
		return false, nil
	}

	ok, err := s.sessions.IsAuthenticated(ctx, token)
	if err != nil {
		s.logger.Error("查询会话失败", zap.Error(err))
		return false, err
	}
	return ok, nil
}
