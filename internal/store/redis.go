package store

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient 创建 Redis 客户端并 Ping
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping redis %s: %w", cfg.Addr, err)
	}
	return c, nil
}
