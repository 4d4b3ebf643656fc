package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/repohost/pkg/cli/config"
	"github.com/m-mizutani/repohost/pkg/controller/server"
	"github.com/m-mizutani/repohost/pkg/infra"
	"github.com/m-mizutani/repohost/pkg/usecase"
	"github.com/m-mizutani/repohost/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr               string
		maxBodySize        int64
		contentConcurrency int64

		storage  backends
		bigQuery config.BigQuery
		webhook  config.Webhook
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("REPOHOST_ADDR"),
			Destination: &addr,
		},
		&cli.Int64Flag{
			Name:        "max-body-size",
			Usage:       "Max request body size in bytes",
			Value:       32 << 20,
			Sources:     cli.EnvVars("REPOHOST_MAX_BODY_SIZE"),
			Destination: &maxBodySize,
		},
		&cli.Int64Flag{
			Name:        "content-concurrency",
			Usage:       "Max parallel content writes per commit",
			Value:       8,
			Sources:     cli.EnvVars("REPOHOST_CONTENT_CONCURRENCY"),
			Destination: &contentConcurrency,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			storage.flags(),
			bigQuery.Flags(),
			webhook.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Storage", &storage),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Webhook", &webhook),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			defer sentry.Flush()

			infraOptions, opened, err := storage.options(ctx)
			if err != nil {
				return err
			}
			defer opened.Close()

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				defer func() {
					if err := bqClient.Close(); err != nil {
						logging.Default().Warn("failed to close bigquery client", slog.Any("error", err))
					}
				}()
				infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients, usecase.WithContentConcurrency(int(contentConcurrency)))
			s := server.New(uc,
				server.WithWebhookSecret(webhook.Secret()),
				server.WithMaxBodySize(maxBodySize),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
