package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("session cookie expired")
	ErrTokenInvalid = errors.New("session cookie invalid")
)

const issuer = "attendance-app"

// Claims 会话 Cookie 声明
// ID 字段承载不透明的会话 token，Subject 为管理员用户名
type Claims struct {
	jwtv5.RegisteredClaims
}

// Manager 使用应用密钥对会话 token 签名
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager 创建签名管理器；ttl<=0 表示不写入过期时间
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// SignSession 将会话 token 签名为 Cookie 值
func (m *Manager) SignSession(sessionToken, subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:       sessionToken,
			Subject:  subject,
			IssuedAt: jwtv5.NewNumericDate(now),
			Issuer:   issuer,
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwtv5.NewNumericDate(now.Add(m.ttl))
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseSession 校验签名并取出会话 token
func (m *Manager) ParseSession(cookieValue string) (string, error) {
	token, err := jwtv5.ParseWithClaims(cookieValue, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", ErrTokenInvalid
	}

	return claims.ID, nil
}
