package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

func (x *UseCase) CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.RepositoryView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	owner, err := x.clients.Directory().GetUser(ctx, input.Caller.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve caller", goerr.V("caller", input.Caller.ID))
	}

	now := model.NormalizeTimestamp(logging.CtxTime(ctx))
	repo := &model.Repository{
		ID:          types.NewRepositoryID(),
		OwnerID:     owner.ID,
		Name:        input.Name,
		Description: input.Description,
		Visibility:  input.Visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := x.clients.Directory().CreateRepository(ctx, repo); err != nil {
		return nil, goerr.Wrap(err, "failed to create repository",
			goerr.V("owner", owner.Username),
			goerr.V("name", input.Name),
		)
	}

	logging.From(ctx).Info("repository created", "owner", owner.Username, "name", repo.Name, "id", repo.ID)

	return &model.RepositoryView{
		Repository: *repo,
		Owner:      owner.Username,
	}, nil
}

func (x *UseCase) GetRepository(ctx context.Context, ref model.RepositoryRef) (*model.RepositoryView, error) {
	owner, repo, err := x.readableRepository(ctx, ref)
	if err != nil {
		return nil, err
	}
	return x.toView(ctx, owner, repo)
}

// ListRepositories lists repositories of owner visible to caller. An empty owner lists the caller's own.
func (x *UseCase) ListRepositories(ctx context.Context, caller model.Identity, owner types.Username) ([]*model.RepositoryView, error) {
	var (
		ownerUser *model.User
		err       error
	)
	if owner == "" {
		if caller.IsZero() {
			return nil, goerr.Wrap(types.ErrUnauthenticated, "caller identity is required")
		}
		ownerUser, err = x.clients.Directory().GetUser(ctx, caller.ID)
	} else {
		ownerUser, err = x.clients.Directory().GetUserByUsername(ctx, owner)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve owner", goerr.V("owner", owner))
	}

	repos, err := x.clients.Directory().ListRepositories(ctx, ownerUser.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories", goerr.V("owner", ownerUser.Username))
	}

	views := make([]*model.RepositoryView, 0, len(repos))
	for _, repo := range repos {
		if !repo.VisibleTo(caller) {
			continue
		}
		view, err := x.toView(ctx, ownerUser, repo)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (x *UseCase) toView(ctx context.Context, owner *model.User, repo *model.Repository) (*model.RepositoryView, error) {
	head, err := x.clients.CommitRepository().GetHead(ctx, repo.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository head", goerr.V("repoID", repo.ID))
	}

	return &model.RepositoryView{
		Repository: *repo,
		Owner:      owner.Username,
		Head:       head.HashOf(),
	}, nil
}
