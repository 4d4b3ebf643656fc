// Package resilient wraps storage backends so transient failures are retried with bounded
// backoff before surfacing as types.ErrUnavailable.
package resilient

import (
	"context"
	"time"

	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/retry"
)

func call[T any](ctx context.Context, policy retry.Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := retry.Do(ctx, policy, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

type ContentStore struct {
	base   interfaces.ContentStore
	policy retry.Policy
}

var _ interfaces.ContentStore = (*ContentStore)(nil)

func NewContentStore(base interfaces.ContentStore, policy retry.Policy) *ContentStore {
	return &ContentStore{base: base, policy: policy}
}

func (x *ContentStore) Put(ctx context.Context, data []byte) (types.ContentHash, error) {
	return call(ctx, x.policy, "content.put", func(ctx context.Context) (types.ContentHash, error) {
		return x.base.Put(ctx, data)
	})
}

func (x *ContentStore) Get(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	return call(ctx, x.policy, "content.get", func(ctx context.Context) ([]byte, error) {
		return x.base.Get(ctx, hash)
	})
}

func (x *ContentStore) Has(ctx context.Context, hash types.ContentHash) (bool, error) {
	return call(ctx, x.policy, "content.has", func(ctx context.Context) (bool, error) {
		return x.base.Has(ctx, hash)
	})
}

type Directory struct {
	base   interfaces.Directory
	policy retry.Policy
}

var _ interfaces.Directory = (*Directory)(nil)

func NewDirectory(base interfaces.Directory, policy retry.Policy) *Directory {
	return &Directory{base: base, policy: policy}
}

func (x *Directory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	return call(ctx, x.policy, "directory.get_user", func(ctx context.Context) (*model.User, error) {
		return x.base.GetUser(ctx, id)
	})
}

func (x *Directory) GetUserByUsername(ctx context.Context, username types.Username) (*model.User, error) {
	return call(ctx, x.policy, "directory.get_user_by_username", func(ctx context.Context) (*model.User, error) {
		return x.base.GetUserByUsername(ctx, username)
	})
}

func (x *Directory) GetRepository(ctx context.Context, ownerID types.UserID, name string) (*model.Repository, error) {
	return call(ctx, x.policy, "directory.get_repository", func(ctx context.Context) (*model.Repository, error) {
		return x.base.GetRepository(ctx, ownerID, name)
	})
}

func (x *Directory) GetRepositoryByID(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	return call(ctx, x.policy, "directory.get_repository_by_id", func(ctx context.Context) (*model.Repository, error) {
		return x.base.GetRepositoryByID(ctx, id)
	})
}

func (x *Directory) ListRepositories(ctx context.Context, ownerID types.UserID) ([]*model.Repository, error) {
	return call(ctx, x.policy, "directory.list_repositories", func(ctx context.Context) ([]*model.Repository, error) {
		return x.base.ListRepositories(ctx, ownerID)
	})
}

func (x *Directory) UpsertUser(ctx context.Context, user *model.User) error {
	return retry.Do(ctx, x.policy, "directory.upsert_user", func(ctx context.Context) error {
		return x.base.UpsertUser(ctx, user)
	})
}

func (x *Directory) UpdateDisplayName(ctx context.Context, id types.UserID, displayName string, updatedAt time.Time) (*model.User, error) {
	return call(ctx, x.policy, "directory.update_display_name", func(ctx context.Context) (*model.User, error) {
		return x.base.UpdateDisplayName(ctx, id, displayName, updatedAt)
	})
}

// CreateRepository is retried as a whole; a retry after an unacknowledged success reports ErrConflict
func (x *Directory) CreateRepository(ctx context.Context, repo *model.Repository) error {
	return retry.Do(ctx, x.policy, "directory.create_repository", func(ctx context.Context) error {
		return x.base.CreateRepository(ctx, repo)
	})
}

type CommitRepository struct {
	base   interfaces.CommitRepository
	policy retry.Policy
}

var _ interfaces.CommitRepository = (*CommitRepository)(nil)

func NewCommitRepository(base interfaces.CommitRepository, policy retry.Policy) *CommitRepository {
	return &CommitRepository{base: base, policy: policy}
}

// AppendCommit can be retried safely because appending an already recorded commit is a success
func (x *CommitRepository) AppendCommit(ctx context.Context, commit *model.Commit) error {
	return retry.Do(ctx, x.policy, "commit.append", func(ctx context.Context) error {
		return x.base.AppendCommit(ctx, commit)
	})
}

func (x *CommitRepository) GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error) {
	return call(ctx, x.policy, "commit.get", func(ctx context.Context) (*model.Commit, error) {
		return x.base.GetCommit(ctx, repoID, hash)
	})
}

func (x *CommitRepository) ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	return call(ctx, x.policy, "commit.list", func(ctx context.Context) ([]*model.Commit, error) {
		return x.base.ListCommits(ctx, repoID, opts)
	})
}

func (x *CommitRepository) GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error) {
	return call(ctx, x.policy, "commit.get_head", func(ctx context.Context) (*model.Head, error) {
		return x.base.GetHead(ctx, repoID)
	})
}
