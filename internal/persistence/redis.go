package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/config"
)

// Redis holds the client backing the account role cache. Client is nil when
// REDIS_ADDR is empty, which leaves the role cache disabled.
type Redis struct {
	Client      *redis.Client
	pingTimeout time.Duration
}

// NewRedis builds the client. An unreachable server is logged and tolerated:
// role lookups fall through to Postgres until it comes back.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{pingTimeout: cfg.PingTimeout()}
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; role cache disabled")
		return r
	}

	r.Client = redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: r.pingTimeout,
		ReadTimeout: r.pingTimeout,
	})

	if err := r.Ping(context.Background()); err != nil {
		logger.Warn("redis unreachable; role cache misses will hit postgres",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping checks connectivity within the configured ping timeout.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return fmt.Errorf("redis: %w", ErrNotConfigured)
	}
	ctx, cancel := withPingTimeout(ctx, r.pingTimeout)
	defer cancel()
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
