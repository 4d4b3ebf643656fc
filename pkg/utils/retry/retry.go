package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// Policy is a bounded exponential backoff
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 50 * time.Millisecond,
		MaxDelay:  time.Second,
	}
}

func (x Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("attempts", x.Attempts),
		slog.Duration("base_delay", x.BaseDelay),
		slog.Duration("max_delay", x.MaxDelay),
	)
}

// Delay returns the wait before the given retry (1-based)
func (x Policy) Delay(retry int) time.Duration {
	d := x.BaseDelay
	for i := 1; i < retry; i++ {
		d *= 2
		if x.MaxDelay > 0 && d >= x.MaxDelay {
			return x.MaxDelay
		}
	}
	if x.MaxDelay > 0 && d > x.MaxDelay {
		return x.MaxDelay
	}
	return d
}

var permanentErrors = []error{
	types.ErrNotFound,
	types.ErrForbidden,
	types.ErrConflict,
	types.ErrIntegrityViolation,
	types.ErrValidationFailed,
	types.ErrUnauthenticated,
	types.ErrInvalidOption,
	context.Canceled,
	context.DeadlineExceeded,
}

// IsPermanent reports whether err is a domain outcome that must not be retried
func IsPermanent(err error) bool {
	for _, target := range permanentErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Do runs fn until it succeeds, returns a permanent error, or attempts run out.
// Exhaustion is reported as types.ErrUnavailable wrapping the last error.
func Do(ctx context.Context, policy Policy, op string, fn func(ctx context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			delay := policy.Delay(i)
			logging.From(ctx).Warn("retrying storage operation",
				slog.String("op", op),
				slog.Int("attempt", i+1),
				slog.Duration("delay", delay),
				slog.Any("error", lastErr),
			)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return goerr.Wrap(ctx.Err(), "retry aborted", goerr.V("op", op), goerr.V("last_error", lastErr.Error()))
			case <-timer.C:
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		lastErr = err
	}

	return goerr.Wrap(types.ErrUnavailable, "storage operation failed after retries",
		goerr.V("op", op),
		goerr.V("attempts", attempts),
		goerr.V("last_error", lastErr.Error()),
	)
}
