package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 默认凭据仅用于本地开发，任何部署都必须覆盖
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultSecretKey     = "replace-with-a-secure-random-string"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
// TrustedProxies 为允许提供 X-Forwarded-For 的反向代理；为空时以连接地址作为客户端 IP
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	CORS           CORSConfig    `mapstructure:"cors"`
	TrustedProxies []string      `mapstructure:"trusted_proxies"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig 数据库配置
// Driver 为 sqlite 时只使用 Path，其余字段用于 postgres / mysql
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 按驱动生成连接字符串
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
		)
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name,
		)
	default:
		return c.Path
	}
}

// RedisConfig Redis 配置，Addr 为空表示不启用
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled 是否配置了 Redis
func (c *RedisConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig 管理员认证与会话配置
type AuthConfig struct {
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPassword     string        `mapstructure:"admin_password"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	SecretKey         string        `mapstructure:"secret_key"`
	SessionStore      string        `mapstructure:"session_store"` // "memory" | "redis"
	SessionTTL        time.Duration `mapstructure:"session_ttl"`   // 0 = 不过期
	LoginRateLimit    int           `mapstructure:"login_rate_limit"`
	LoginRateWindow   time.Duration `mapstructure:"login_rate_window"`
	Cookie            CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"` // "stdout" | "stderr" | 文件路径
}

// legacyEnv 与原部署脚本兼容的环境变量名
var legacyEnv = map[string]string{
	"server.port":              "PORT",
	"auth.admin_username":      "ADMIN_USERNAME",
	"auth.admin_password":      "ADMIN_PASSWORD",
	"auth.admin_password_hash": "ADMIN_PASSWORD_HASH",
	"auth.secret_key":          "APP_SECRET_KEY",
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{})
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "attendance.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "attendance")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.admin_username", DefaultAdminUsername)
	v.SetDefault("auth.admin_password", DefaultAdminPassword)
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.secret_key", DefaultSecretKey)
	v.SetDefault("auth.session_store", "memory")
	v.SetDefault("auth.session_ttl", "0s")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "ATTENDANCE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	for _, o := range c.Server.CORS.AllowOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("配置校验失败: server.cors.allow_origins 中的 %q 必须以 http:// 或 https:// 开头", o)
		}
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("配置校验失败: db.driver 不支持 %q", c.Database.Driver)
	}
	switch c.Auth.SessionStore {
	case "memory":
	case "redis":
		if !c.Redis.Enabled() {
			return fmt.Errorf("配置校验失败: auth.session_store=redis 需要配置 redis.addr")
		}
	default:
		return fmt.Errorf("配置校验失败: auth.session_store 不支持 %q", c.Auth.SessionStore)
	}
	if c.Auth.AdminUsername == "" {
		return fmt.Errorf("配置校验失败: auth.admin_username 不能为空")
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("配置校验失败: 必须提供 auth.admin_password 或 auth.admin_password_hash")
	}
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("配置校验失败: auth.secret_key 不能为空")
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("配置校验失败: auth.session_ttl 不能为负数")
	}
	return nil
}

// InsecureDefaults 返回仍在使用默认占位值的配置项
func (c *Config) InsecureDefaults() []string {
	var keys []string
	if c.Auth.AdminUsername == DefaultAdminUsername {
		keys = append(keys, "auth.admin_username")
	}
	if c.Auth.AdminPasswordHash == "" && c.Auth.AdminPassword == DefaultAdminPassword {
		keys = append(keys, "auth.admin_password")
	}
	if c.Auth.SecretKey == DefaultSecretKey {
		keys = append(keys, "auth.secret_key")
	}
	return keys
}
