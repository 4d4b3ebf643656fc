package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/repohost/pkg/cli/config"
	"github.com/m-mizutani/repohost/pkg/infra"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// backends holds storage configuration shared by commands that touch storage
type backends struct {
	content   config.Content
	postgres  config.Postgres
	firestore config.Firestore
	redis     config.Redis
	retry     config.Retry
}

func (x *backends) flags() []cli.Flag {
	return slice.Flatten(
		x.content.Flags(),
		x.postgres.Flags(),
		x.firestore.Flags(),
		x.redis.Flags(),
		x.retry.Flags(),
	)
}

// options opens configured backends. Content: GCS, BoltDB, memory. Directory: Firestore,
// PostgreSQL, memory. Commit store: Firestore, PostgreSQL, Redis, memory.
func (x *backends) options(ctx context.Context) ([]infra.Option, safe.Closers, error) {
	var (
		opts   []infra.Option
		opened safe.Closers
	)
	fail := func(err error) ([]infra.Option, safe.Closers, error) {
		opened.Close()
		return nil, nil, err
	}
	logger := logging.From(ctx)

	switch {
	case x.content.UseGCS():
		store, err := x.content.NewGCS(ctx)
		if err != nil {
			return fail(err)
		}
		opened.Add(store)
		opts = append(opts, infra.WithContentStore(store))
		logger.Info("content store: gcs")

	case x.content.UseBolt():
		store, err := x.content.NewBolt()
		if err != nil {
			return fail(err)
		}
		opened.Add(store)
		opts = append(opts, infra.WithContentStore(store))
		logger.Info("content store: bolt")

	default:
		logger.Warn("content store: memory, contents are lost on exit")
	}

	switch {
	case x.firestore.Enabled():
		repo, err := x.firestore.NewRepository(ctx)
		if err != nil {
			return fail(err)
		}
		opened.Add(repo)
		opts = append(opts, infra.WithDirectory(repo), infra.WithCommitRepository(repo))
		logger.Info("directory and commit store: firestore")
		if x.redis.Enabled() || x.postgres.Enabled() {
			logger.Warn("firestore takes precedence, other storage options are ignored")
		}

	case x.postgres.Enabled():
		repo, err := x.postgres.NewRepository(ctx)
		if err != nil {
			return fail(err)
		}
		opened.Add(repo)
		opts = append(opts, infra.WithDirectory(repo), infra.WithCommitRepository(repo))
		logger.Info("directory and commit store: postgres")
		if x.redis.Enabled() {
			logger.Warn("postgres takes precedence, redis option is ignored")
		}

	case x.redis.Enabled():
		repo, err := x.redis.NewRepository(ctx)
		if err != nil {
			return fail(err)
		}
		opened.Add(repo)
		opts = append(opts, infra.WithCommitRepository(repo))
		logger.Warn("directory: memory, commit store: redis")

	default:
		logger.Warn("directory and commit store: memory, history is lost on exit")
	}

	opts = append(opts, infra.WithRetryPolicy(x.retry.Policy()))
	return opts, opened, nil
}

func (x *backends) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("content", &x.content),
		slog.Any("postgres", &x.postgres),
		slog.Any("firestore", &x.firestore),
		slog.Any("redis", &x.redis),
		slog.Any("retry", &x.retry),
	)
}
