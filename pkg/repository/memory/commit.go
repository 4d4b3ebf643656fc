package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// AppendCommit holds the write lock across the parent check and head swap, which serializes
// head updates of every repository in the process.
func (r *Repository) AppendCommit(ctx context.Context, commit *model.Commit) error {
	if err := commit.Verify(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histories[commit.RepositoryID]
	if !ok {
		h = &history{byHash: make(map[types.CommitHash]*model.Commit)}
		r.histories[commit.RepositoryID] = h
	}

	if existing, ok := h.byHash[commit.Hash]; ok {
		commit.Seq = existing.Seq
		return nil
	}

	if commit.Parent != "" {
		if _, ok := h.byHash[commit.Parent]; !ok {
			return goerr.Wrap(types.ErrValidationFailed, "parent commit does not exist in the repository",
				goerr.V("repoID", commit.RepositoryID),
				goerr.V("parent", commit.Parent),
			)
		}
	}

	if current := h.head.HashOf(); current != commit.Parent {
		return goerr.Wrap(types.ErrConflict, "repository head has moved",
			goerr.V("repoID", commit.RepositoryID),
			goerr.V("head", current),
			goerr.V("parent", commit.Parent),
		)
	}

	commit.Seq = int64(len(h.commits)) + 1
	stored := copyCommit(commit)
	h.byHash[stored.Hash] = stored
	h.commits = append(h.commits, stored)
	h.head = &model.Head{
		RepositoryID: commit.RepositoryID,
		CommitHash:   commit.Hash,
		Seq:          commit.Seq,
		UpdatedAt:    commit.Timestamp,
	}

	return nil
}

func (r *Repository) GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.histories[repoID]; ok {
		if commit, ok := h.byHash[hash]; ok {
			return copyCommit(commit), nil
		}
	}
	return nil, goerr.Wrap(types.ErrNotFound, "commit not found",
		goerr.V("repoID", repoID),
		goerr.V("hash", hash),
	)
}

func (r *Repository) ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commits := []*model.Commit{}
	if h, ok := r.histories[repoID]; ok {
		for _, commit := range h.commits {
			commits = append(commits, copyCommit(commit))
		}
	}

	model.SortCommits(commits)
	if opts.Limit > 0 && len(commits) > opts.Limit {
		commits = commits[:opts.Limit]
	}
	return commits, nil
}

func (r *Repository) GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.histories[repoID]
	if !ok || h.head == nil {
		return nil, nil
	}
	head := *h.head
	return &head, nil
}
