package config

import (
	"log/slog"

	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type Webhook struct {
	secret types.WebhookSecret
}

func (x *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "Svix signing secret (whsec_...) of identity provider webhooks",
			Category:    "Webhook",
			Sources:     cli.EnvVars("REPOHOST_WEBHOOK_SECRET"),
			Destination: (*string)(&x.secret),
		},
	}
}

func (x *Webhook) Secret() types.WebhookSecret {
	return x.secret
}

func (x *Webhook) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("secret.len", len(x.secret)),
	)
}
