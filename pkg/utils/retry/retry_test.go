package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/retry"
)

var fastPolicy = retry.Policy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retry.Do(ctx, fastPolicy, "test", func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection reset")
			}
			return nil
		})
		gt.NoError(t, err)
		gt.V(t, calls).Equal(3)
	})

	t.Run("gives up as unavailable", func(t *testing.T) {
		calls := 0
		err := retry.Do(ctx, fastPolicy, "test", func(ctx context.Context) error {
			calls++
			return errors.New("connection reset")
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrUnavailable))
		gt.V(t, calls).Equal(3)
	})

	t.Run("domain errors are not retried", func(t *testing.T) {
		for _, target := range []error{types.ErrConflict, types.ErrIntegrityViolation, types.ErrNotFound} {
			calls := 0
			err := retry.Do(ctx, fastPolicy, "test", func(ctx context.Context) error {
				calls++
				return goerr.Wrap(target, "domain")
			})
			gt.True(t, errors.Is(err, target))
			gt.V(t, calls).Equal(1)
		}
	})

	t.Run("context cancellation stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := retry.Do(ctx, retry.Policy{Attempts: 5, BaseDelay: time.Hour}, "test", func(ctx context.Context) error {
			calls++
			cancel()
			return errors.New("transient")
		})
		gt.True(t, errors.Is(err, context.Canceled))
		gt.V(t, calls).Equal(1)
	})
}

func TestPolicyDelay(t *testing.T) {
	p := retry.Policy{BaseDelay: 10 * time.Millisecond, MaxDelay: 35 * time.Millisecond}
	gt.V(t, p.Delay(1)).Equal(10 * time.Millisecond)
	gt.V(t, p.Delay(2)).Equal(20 * time.Millisecond)
	gt.V(t, p.Delay(3)).Equal(35 * time.Millisecond)
	gt.V(t, p.Delay(10)).Equal(35 * time.Millisecond)
}
