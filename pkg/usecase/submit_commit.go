package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// SubmitCommit stores the content of the changes, builds the new tree on top of the parent
// tree and appends the commit. The head only moves in the final append, so a failure or
// timeout at any earlier step leaves the repository unchanged.
func (x *UseCase) SubmitCommit(ctx context.Context, input *model.SubmitCommitInput) (*model.SubmitCommitResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, input.Timeout)
		defer cancel()
	}

	ownerUser, repo, err := x.resolveRepository(ctx, input.Owner, input.Repository)
	if err != nil {
		return nil, err
	}

	if x.authorize(ctx, input.Caller, repo) != model.Allow {
		return nil, goerr.Wrap(types.ErrForbidden, "caller may not commit to the repository",
			goerr.V("caller", input.Caller.ID),
			goerr.V("owner", input.Owner),
			goerr.V("repository", input.Repository),
		)
	}

	parent := input.ParentHash
	if parent == "" {
		head, err := x.clients.CommitRepository().GetHead(ctx, repo.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get repository head", goerr.V("repoID", repo.ID))
		}
		parent = head.HashOf()
	}

	baseTree, err := x.loadParentTree(ctx, repo.ID, parent)
	if err != nil {
		return nil, err
	}

	changes, err := x.putChanges(ctx, input.Changes)
	if err != nil {
		return nil, err
	}

	tree, err := baseTree.Apply(changes)
	if err != nil {
		return nil, err
	}
	rawTree, err := tree.Encode()
	if err != nil {
		return nil, err
	}
	treeHash, err := x.clients.ContentStore().Put(ctx, rawTree)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store tree", goerr.V("repoID", repo.ID))
	}

	commit := model.NewCommit(repo.ID, parent, treeHash, input.Caller, input.AuthorNameOrDefault(), input.Message, logging.CtxTime(ctx))

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "commit submission expired before append", goerr.V("repoID", repo.ID))
	}

	if err := x.clients.CommitRepository().AppendCommit(ctx, commit); err != nil {
		return nil, goerr.Wrap(err, "failed to append commit",
			goerr.V("repoID", repo.ID),
			goerr.V("parent", parent),
		)
	}

	logging.From(ctx).Info("commit accepted",
		slog.Any("owner", ownerUser.Username),
		slog.String("repository", repo.Name),
		slog.Any("hash", commit.Hash),
		slog.Any("parent", commit.Parent),
		slog.Int("changes", len(changes)),
	)

	x.exportCommit(ctx, ownerUser, repo, commit, len(changes))

	return &model.SubmitCommitResult{
		CommitHash: commit.Hash,
		HeadHash:   x.headAfterAppend(ctx, commit),
	}, nil
}

// headAfterAppend reads the head back, since a replayed commit is accepted without moving it.
// Falls back to the appended hash when the head cannot be read.
func (x *UseCase) headAfterAppend(ctx context.Context, commit *model.Commit) types.CommitHash {
	head, err := x.clients.CommitRepository().GetHead(ctx, commit.RepositoryID)
	if err != nil || head == nil {
		logging.From(ctx).Warn("failed to read head after append",
			slog.Any("repoID", commit.RepositoryID),
			slog.Any("hash", commit.Hash),
			slog.Any("error", err),
		)
		return commit.Hash
	}
	return head.CommitHash
}

func (x *UseCase) loadParentTree(ctx context.Context, repoID types.RepositoryID, parent types.CommitHash) (*model.Tree, error) {
	if parent == "" {
		return model.NewTree(), nil
	}

	commit, err := x.clients.CommitRepository().GetCommit(ctx, repoID, parent)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrValidationFailed, "parent commit does not exist in the repository",
				goerr.V("repoID", repoID),
				goerr.V("parent", parent),
			)
		}
		return nil, goerr.Wrap(err, "failed to get parent commit", goerr.V("parent", parent))
	}

	return x.loadTree(ctx, commit)
}

func (x *UseCase) loadTree(ctx context.Context, commit *model.Commit) (*model.Tree, error) {
	raw, err := x.clients.ContentStore().Get(ctx, commit.TreeHash)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrIntegrityViolation, "tree of recorded commit is missing",
				goerr.V("commit", commit.Hash),
				goerr.V("tree", commit.TreeHash),
			)
		}
		return nil, goerr.Wrap(err, "failed to get tree", goerr.V("tree", commit.TreeHash))
	}
	return model.DecodeTree(raw)
}

// putChanges writes contents in parallel. Every write is confirmed before it returns.
func (x *UseCase) putChanges(ctx context.Context, changes []model.FileChange) ([]model.TreeChange, error) {
	result := make([]model.TreeChange, len(changes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(x.contentConcurrency)

	for i := range changes {
		change := changes[i]
		if change.Delete {
			result[i] = model.TreeChange{Path: change.Path, Delete: true}
			continue
		}

		eg.Go(func() error {
			data := []byte(*change.Content)
			hash, err := x.clients.ContentStore().Put(ctx, data)
			if err != nil {
				return goerr.Wrap(err, "failed to store file content", goerr.V("path", change.Path))
			}
			result[i] = model.TreeChange{
				Path:        change.Path,
				ContentHash: hash,
				Size:        int64(len(data)),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
