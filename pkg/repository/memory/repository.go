package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

func (r *Repository) CreateRepository(ctx context.Context, repo *model.Repository) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := repoNameKey(repo.OwnerID, repo.Name)
	if _, exists := r.repoNames[key]; exists {
		return goerr.Wrap(types.ErrConflict, "repository already exists",
			goerr.V("ownerID", repo.OwnerID),
			goerr.V("name", repo.Name),
		)
	}
	if _, exists := r.repos[repo.ID]; exists {
		return goerr.Wrap(types.ErrConflict, "repository ID already exists", goerr.V("repoID", repo.ID))
	}

	r.repos[repo.ID] = copyRepository(repo)
	r.repoNames[key] = repo.ID
	return nil
}

func (r *Repository) GetRepository(ctx context.Context, ownerID types.UserID, name string) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.repoNames[repoNameKey(ownerID, name)]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "repository not found",
			goerr.V("ownerID", ownerID),
			goerr.V("name", name),
		)
	}
	return copyRepository(r.repos[id]), nil
}

func (r *Repository) GetRepositoryByID(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repo, ok := r.repos[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "repository not found", goerr.V("repoID", id))
	}
	return copyRepository(repo), nil
}

func (r *Repository) ListRepositories(ctx context.Context, ownerID types.UserID) ([]*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repos := []*model.Repository{}
	for _, repo := range r.repos {
		if repo.OwnerID == ownerID {
			repos = append(repos, copyRepository(repo))
		}
	}
	model.SortRepositories(repos)
	return repos, nil
}
