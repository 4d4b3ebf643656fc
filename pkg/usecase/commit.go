package usecase

import (
	"bytes"
	"context"
	"errors"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/pmezard/go-difflib/difflib"
)

const diffContextLines = 3

func (x *UseCase) ListCommits(ctx context.Context, ref model.RepositoryRef, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	if opts.Limit < 0 {
		return nil, goerr.Wrap(types.ErrValidationFailed, "limit must not be negative", goerr.V("limit", opts.Limit))
	}

	_, repo, err := x.readableRepository(ctx, ref)
	if err != nil {
		return nil, err
	}

	commits, err := x.clients.CommitRepository().ListCommits(ctx, repo.ID, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits", goerr.V("repoID", repo.ID))
	}
	return commits, nil
}

func (x *UseCase) getCommit(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash) (*model.Commit, error) {
	if err := hash.Validate(); err != nil {
		return nil, err
	}

	_, repo, err := x.readableRepository(ctx, ref)
	if err != nil {
		return nil, err
	}

	commit, err := x.clients.CommitRepository().GetCommit(ctx, repo.ID, hash)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("repoID", repo.ID), goerr.V("hash", hash))
	}
	return commit, nil
}

func (x *UseCase) GetCommit(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash) (*model.CommitDetail, error) {
	commit, err := x.getCommit(ctx, ref, hash)
	if err != nil {
		return nil, err
	}

	tree, err := x.loadTree(ctx, commit)
	if err != nil {
		return nil, err
	}

	return &model.CommitDetail{
		Commit: *commit,
		Files:  tree.Entries,
	}, nil
}

// GetCommitDiff compares the commit with its parent, or with an empty tree for the first commit
func (x *UseCase) GetCommitDiff(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash) (*model.CommitDiff, error) {
	commit, err := x.getCommit(ctx, ref, hash)
	if err != nil {
		return nil, err
	}

	newTree, err := x.loadTree(ctx, commit)
	if err != nil {
		return nil, err
	}

	oldTree := model.NewTree()
	if commit.Parent != "" {
		parent, err := x.clients.CommitRepository().GetCommit(ctx, commit.RepositoryID, commit.Parent)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, goerr.Wrap(types.ErrIntegrityViolation, "parent of recorded commit is missing",
					goerr.V("commit", commit.Hash),
					goerr.V("parent", commit.Parent),
				)
			}
			return nil, goerr.Wrap(err, "failed to get parent commit", goerr.V("parent", commit.Parent))
		}
		if oldTree, err = x.loadTree(ctx, parent); err != nil {
			return nil, err
		}
	}

	files := model.CompareTrees(oldTree, newTree)
	for i := range files {
		patch, err := x.patch(ctx, &files[i])
		if err != nil {
			return nil, err
		}
		files[i].Patch = patch
	}

	return &model.CommitDiff{
		CommitHash: commit.Hash,
		ParentHash: commit.Parent,
		Files:      files,
	}, nil
}

func (x *UseCase) blob(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	if hash == "" {
		return nil, nil
	}
	data, err := x.clients.ContentStore().Get(ctx, hash)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrIntegrityViolation, "content referenced by a tree is missing", goerr.V("hash", hash))
		}
		return nil, goerr.Wrap(err, "failed to get content", goerr.V("hash", hash))
	}
	return data, nil
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}

func (x *UseCase) patch(ctx context.Context, diff *model.FileDiff) (string, error) {
	oldData, err := x.blob(ctx, diff.OldHash)
	if err != nil {
		return "", err
	}
	newData, err := x.blob(ctx, diff.NewHash)
	if err != nil {
		return "", err
	}

	if isBinary(oldData) || isBinary(newData) {
		return "Binary files differ\n", nil
	}

	fromFile, toFile := "a/"+diff.Path, "b/"+diff.Path
	switch diff.Status {
	case model.DiffAdded:
		fromFile = "/dev/null"
	case model.DiffDeleted:
		toFile = "/dev/null"
	}

	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldData)),
		B:        difflib.SplitLines(string(newData)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContextLines,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to build unified diff", goerr.V("path", diff.Path))
	}
	return patch, nil
}

func (x *UseCase) GetFile(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash, path string) ([]byte, error) {
	if err := model.ValidatePath(path); err != nil {
		return nil, err
	}

	commit, err := x.getCommit(ctx, ref, hash)
	if err != nil {
		return nil, err
	}

	tree, err := x.loadTree(ctx, commit)
	if err != nil {
		return nil, err
	}

	entry, ok := tree.Lookup(path)
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "file not found in commit",
			goerr.V("commit", hash),
			goerr.V("path", path),
		)
	}
	return x.blob(ctx, entry.ContentHash)
}
