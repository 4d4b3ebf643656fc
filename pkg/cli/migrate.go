package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/cli/config"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	var postgres config.Postgres

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply PostgreSQL schema migrations",
		Flags: postgres.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !postgres.Enabled() {
				return goerr.New("postgres DSN is required for migration")
			}

			repo, err := postgres.NewRepository(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(repo)

			if err := repo.Migrate(); err != nil {
				return err
			}

			logging.From(ctx).Info("migration completed", slog.Any("postgres", &postgres))
			return nil
		},
	}
}
