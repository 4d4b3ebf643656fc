package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// Authorize returns Allow only when the caller is a known user who owns the repository.
// Every lookup failure is a Deny.
func (x *UseCase) Authorize(ctx context.Context, caller model.Identity, owner types.Username, name string) model.Decision {
	_, repo, err := x.resolveRepository(ctx, owner, name)
	if err != nil {
		logging.From(ctx).Debug("authorization denied: repository not resolved",
			slog.Any("owner", owner),
			slog.String("name", name),
			slog.Any("error", err),
		)
		return model.Deny
	}
	return x.authorize(ctx, caller, repo)
}

func (x *UseCase) authorize(ctx context.Context, caller model.Identity, repo *model.Repository) model.Decision {
	if caller.IsZero() || repo == nil {
		return model.Deny
	}

	user, err := x.clients.Directory().GetUser(ctx, caller.ID)
	if err != nil {
		logging.From(ctx).Debug("authorization denied: caller not resolved",
			slog.Any("caller", caller.ID),
			slog.Any("error", err),
		)
		return model.Deny
	}

	if user.ID != repo.OwnerID {
		return model.Deny
	}
	return model.Allow
}

// resolveRepository looks up the repository regardless of its visibility
func (x *UseCase) resolveRepository(ctx context.Context, owner types.Username, name string) (*model.User, *model.Repository, error) {
	ownerUser, err := x.clients.Directory().GetUserByUsername(ctx, owner)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to resolve repository owner", goerr.V("owner", owner))
	}

	repo, err := x.clients.Directory().GetRepository(ctx, ownerUser.ID, name)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to resolve repository", goerr.V("owner", owner), goerr.V("name", name))
	}

	return ownerUser, repo, nil
}

// readableRepository resolves the repository and hides private ones from non-owners
func (x *UseCase) readableRepository(ctx context.Context, ref model.RepositoryRef) (*model.User, *model.Repository, error) {
	ownerUser, repo, err := x.resolveRepository(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, nil, err
	}
	if !repo.VisibleTo(ref.Caller) {
		return nil, nil, goerr.Wrap(types.ErrNotFound, "repository not found",
			goerr.V("owner", ref.Owner),
			goerr.V("name", ref.Name),
		)
	}
	return ownerUser, repo, nil
}
