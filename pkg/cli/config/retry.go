package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/repohost/pkg/utils/retry"
	"github.com/urfave/cli/v3"
)

// Retry configures backoff of transient storage failures
type Retry struct {
	attempts  int64
	baseDelay time.Duration
	maxDelay  time.Duration
}

func (x *Retry) Flags() []cli.Flag {
	def := retry.DefaultPolicy()
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "retry-attempts",
			Usage:       "Max attempts of a storage operation",
			Category:    "Retry",
			Sources:     cli.EnvVars("REPOHOST_RETRY_ATTEMPTS"),
			Value:       int64(def.Attempts),
			Destination: &x.attempts,
		},
		&cli.DurationFlag{
			Name:        "retry-base-delay",
			Usage:       "Initial backoff delay",
			Category:    "Retry",
			Sources:     cli.EnvVars("REPOHOST_RETRY_BASE_DELAY"),
			Value:       def.BaseDelay,
			Destination: &x.baseDelay,
		},
		&cli.DurationFlag{
			Name:        "retry-max-delay",
			Usage:       "Upper bound of backoff delay",
			Category:    "Retry",
			Sources:     cli.EnvVars("REPOHOST_RETRY_MAX_DELAY"),
			Value:       def.MaxDelay,
			Destination: &x.maxDelay,
		},
	}
}

func (x *Retry) Policy() retry.Policy {
	return retry.Policy{
		Attempts:  int(x.attempts),
		BaseDelay: x.baseDelay,
		MaxDelay:  x.maxDelay,
	}
}

func (x *Retry) LogValue() slog.Value {
	return x.Policy().LogValue()
}
