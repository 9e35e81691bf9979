package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MinJWTSecretLength is the shortest HS256 key accepted outside test mode.
const MinJWTSecretLength = 32

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Subscription SubscriptionConfig `mapstructure:"subscription"`
	Log          LogConfig          `mapstructure:"log"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	DSN          string `mapstructure:"dsn"` // sqlite 文件路径或完整 DSN
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// AuthConfig is the single source of truth for the password policy and the
// login lockout. Clients read the policy through GET /auth/password-policy.
type AuthConfig struct {
	PasswordMinLength int `mapstructure:"password_min_length"`
	PasswordMaxLength int `mapstructure:"password_max_length"`
	MaxLoginAttempts  int `mapstructure:"max_login_attempts"`
	LockoutSeconds    int `mapstructure:"lockout_seconds"`
}

type SubscriptionConfig struct {
	Plans []PlanConfig `mapstructure:"plans"`
}

// PlanConfig seeds the subscription_plans table; at runtime plans are read from the database.
type PlanConfig struct {
	Name         string  `mapstructure:"name"`
	Price        float64 `mapstructure:"price"`
	DurationDays int     `mapstructure:"duration_days"`
	Description  string  `mapstructure:"description"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("auth.password_min_length", 6)
	v.SetDefault("auth.password_max_length", 72)
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("auth.lockout_seconds", 900)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
}

func Load(configPath string) (*Config, error) {
	// .env 仅用于本地开发，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	// 仅 test 模式允许短密钥
	if len(c.JWT.Secret) < MinJWTSecretLength && c.Server.Mode != "test" {
		return fmt.Errorf("jwt.secret must be at least %d bytes", MinJWTSecretLength)
	}
	if c.Auth.PasswordMinLength < 1 {
		return errors.New("auth.password_min_length must be positive")
	}
	if c.Auth.PasswordMaxLength < c.Auth.PasswordMinLength || c.Auth.PasswordMaxLength > 72 {
		return errors.New("auth.password_max_length must be between password_min_length and 72")
	}
	if c.Auth.MaxLoginAttempts < 1 || c.Auth.LockoutSeconds < 1 {
		return errors.New("auth.max_login_attempts and auth.lockout_seconds must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	return nil
}
