package lock

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/loanledger/internal/config"
)

// Module provides the loan locker, backed by Redis when an address is configured.
var Module = fx.Provide(newLocker)

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocker(p lockerParams) Locker {
	if p.Config.RedisAddress == "" {
		return NewLocalLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.Config.RedisAddress,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	p.Logger.Info("using redis loan locks", slog.String("addr", p.Config.RedisAddress))
	return NewRedisLocker(client, p.Config.LockTTL, p.Logger)
}
