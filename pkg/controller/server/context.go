package server

import (
	"context"

	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// DetachContext creates a new context.Background() based context that inherits
// logger, request ID, time function and caller identity from the original context.
// The original request context is cancelled when the client goes away.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := context.Background()

	// Inherit logger from the original context
	bgCtx = logging.With(bgCtx, logging.From(ctx))

	// Inherit request ID and time function from the original context
	bgCtx = logging.InheritContextValues(bgCtx, ctx)

	if identity := identityFrom(ctx); !identity.IsZero() {
		bgCtx = withIdentityContext(bgCtx, identity)
	}

	return bgCtx
}

type ctxIdentityKey struct{}

func withIdentityContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, identity)
}

// identityFrom returns the zero identity for anonymous requests
func identityFrom(ctx context.Context) model.Identity {
	if identity, ok := ctx.Value(ctxIdentityKey{}).(model.Identity); ok {
		return identity
	}
	return model.Identity{}
}
