package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// HandleError reports err to Sentry and logs it. Integrity violations are raised as fatal alerts.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	integrity := errors.Is(err, types.ErrIntegrityViolation)

	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
		if integrity {
			scope.SetLevel(sentry.LevelFatal)
			scope.SetTag("alert", "integrity_violation")
		}
	})
	evID := hub.CaptureException(err)

	logger := logging.From(ctx)
	if integrity {
		logger = logger.With("alert", true)
	}
	logger.Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}
