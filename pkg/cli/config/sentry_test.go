package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/cli/config"
)

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(3)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
	gt.True(t, flagNames["sentry-release"])
}

func TestSentryNotConfigured(t *testing.T) {
	var s config.Sentry
	parse(t, s.Flags())

	gt.False(t, s.Enabled())
	gt.NoError(t, s.Configure(context.Background()))
	s.Flush()
}
