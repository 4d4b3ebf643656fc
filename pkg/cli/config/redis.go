package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/repository/redis"
	"github.com/urfave/cli/v3"
)

type Redis struct {
	addr      string
	password  types.RedisPassword
	db        int64
	keyPrefix string
}

func (x *Redis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address (host:port). Enables Redis as commit store",
			Category:    "Redis",
			Sources:     cli.EnvVars("REPOHOST_REDIS_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Redis",
			Sources:     cli.EnvVars("REPOHOST_REDIS_PASSWORD"),
			Destination: (*string)(&x.password),
		},
		&cli.Int64Flag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Redis",
			Sources:     cli.EnvVars("REPOHOST_REDIS_DB"),
			Destination: &x.db,
		},
		&cli.StringFlag{
			Name:        "redis-key-prefix",
			Usage:       "Prefix of every Redis key",
			Category:    "Redis",
			Sources:     cli.EnvVars("REPOHOST_REDIS_KEY_PREFIX"),
			Value:       "repohost",
			Destination: &x.keyPrefix,
		},
	}
}

func (x *Redis) Enabled() bool {
	return x.addr != ""
}

func (x *Redis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.addr),
		slog.Any("password", x.password),
		slog.Int64("db", x.db),
		slog.String("keyPrefix", x.keyPrefix),
	)
}

func (x *Redis) NewRepository(ctx context.Context) (*redis.Repository, error) {
	return redis.Dial(ctx, x.addr, x.password, int(x.db), redis.WithKeyPrefix(x.keyPrefix))
}
