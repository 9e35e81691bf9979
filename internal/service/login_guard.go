package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/delishare/recipe_server/config"
)

const loginAttemptsKeyPrefix = "login:attempts:"

// LoginGuard counts failed logins per email in Redis and locks the email once
// MaxLoginAttempts is reached. The lock lifts when the counter key expires.
// Redis errors never block a login.
type LoginGuard struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginGuard 创建登录失败计数器；rdb 为 nil 时不做限制
func NewLoginGuard(rdb *redis.Client, cfg config.AuthConfig, logger *zap.Logger) *LoginGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginGuard{
		rdb:         rdb,
		maxAttempts: int64(cfg.MaxLoginAttempts),
		window:      time.Duration(cfg.LockoutSeconds) * time.Second,
		logger:      logger,
	}
}

func (g *LoginGuard) key(email string) string {
	return loginAttemptsKeyPrefix + email
}

// Locked 是否已被锁定
func (g *LoginGuard) Locked(ctx context.Context, email string) bool {
	if g == nil || g.rdb == nil {
		return false
	}

	n, err := g.rdb.Get(ctx, g.key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		g.logger.Warn("login guard unavailable", zap.Error(err))
		return false
	}
	return n >= g.maxAttempts
}

// Fail records a failed attempt and reports whether the email is now locked.
func (g *LoginGuard) Fail(ctx context.Context, email string) bool {
	if g == nil || g.rdb == nil {
		return false
	}

	key := g.key(email)
	pipe := g.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, g.window)
	if _, err := pipe.Exec(ctx); err != nil {
		g.logger.Warn("login guard unavailable", zap.Error(err))
		return false
	}

	if incr.Val() >= g.maxAttempts {
		g.logger.Warn("login locked",
			zap.String("email", email),
			zap.Int64("attempts", incr.Val()),
			zap.Duration("window", g.window),
		)
		return true
	}
	return false
}

// Reset 登录成功后清除计数
func (g *LoginGuard) Reset(ctx context.Context, email string) {
	if g == nil || g.rdb == nil {
		return
	}
	if err := g.rdb.Del(ctx, g.key(email)).Err(); err != nil {
		g.logger.Warn("login guard reset failed", zap.Error(err))
	}
}
