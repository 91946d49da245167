package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/config"
)

// Module wires the Redis cache and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Invoke(registerLifecycle),
)

func newCache(cfg *config.Config) *RedisCache {
	return NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func registerLifecycle(lc fx.Lifecycle, c *RedisCache, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				logger.Warn("redis unavailable, serving reads from database", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
