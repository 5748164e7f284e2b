// Package redis opens the shared Redis client used by the rate limiter and the post cache.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient parses cfg.RedisURL, connects and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opts.Addr, "db", opts.DB)
	return rdb, nil
}
