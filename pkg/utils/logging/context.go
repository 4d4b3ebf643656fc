package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/repohost/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns the request ID in ctx. A new one is issued and attached when absent.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	return CtxWithRequestID(ctx, types.NewRequestID())
}

// CtxWithRequestID attaches an ID issued elsewhere, e.g. by the gateway in front of the server
func CtxWithRequestID(ctx context.Context, id types.RequestID) (types.RequestID, context.Context) {
	return id, context.WithValue(ctx, ctxRequestIDKey{}, id)
}

type ctxLoggerKey struct{}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger in ctx, or the default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxTimeKey struct{}

// TimeFunc is the clock of commit and repository timestamps. Tests replace it to pin time.
type TimeFunc func() time.Time

// CtxTime returns the current time of the clock in ctx, or time.Now
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}

// InheritContextValues copies request ID and clock from src to dst. Logger is not copied.
func InheritContextValues(dst, src context.Context) context.Context {
	if reqID, ok := src.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, reqID)
	}
	if timeFunc, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = context.WithValue(dst, ctxTimeKey{}, timeFunc)
	}
	return dst
}
