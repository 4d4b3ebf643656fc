package errutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/errutil"
)

func TestHandleError(t *testing.T) {
	t.Run("handle error with context", func(t *testing.T) {
		ctx := context.Background()
		err := errors.New("test error")

		// Should not panic
		errutil.HandleError(ctx, "test message", err)
	})

	t.Run("handle integrity violation", func(t *testing.T) {
		err := goerr.Wrap(types.ErrIntegrityViolation, "blob mismatch", goerr.V("hash", "abc"))
		errutil.HandleError(context.Background(), "integrity", err)
	})

	t.Run("handle nil error", func(t *testing.T) {
		ctx := context.Background()

		// Should not panic
		errutil.HandleError(ctx, "test message", nil)
	})
}
