package server

import (
	"context"

	"github.com/m-mizutani/repohost/pkg/domain/model"
)

func WithIdentityContextForTest(ctx context.Context, identity model.Identity) context.Context {
	return withIdentityContext(ctx, identity)
}

func IdentityFromForTest(ctx context.Context) model.Identity {
	return identityFrom(ctx)
}
