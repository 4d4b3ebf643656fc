package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

type UseCase interface {
	SubmitCommit(ctx context.Context, input *model.SubmitCommitInput) (*model.SubmitCommitResult, error)
	Authorize(ctx context.Context, caller model.Identity, owner types.Username, name string) model.Decision

	CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.RepositoryView, error)
	GetRepository(ctx context.Context, ref model.RepositoryRef) (*model.RepositoryView, error)
	ListRepositories(ctx context.Context, caller model.Identity, owner types.Username) ([]*model.RepositoryView, error)

	ListCommits(ctx context.Context, ref model.RepositoryRef, opts model.ListCommitsOptions) ([]*model.Commit, error)
	GetCommit(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash) (*model.CommitDetail, error)
	GetCommitDiff(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash) (*model.CommitDiff, error)
	GetFile(ctx context.Context, ref model.RepositoryRef, hash types.CommitHash, path string) ([]byte, error)

	SyncUser(ctx context.Context, event *model.IdentityEvent) (*model.User, error)
	UpdateDisplayName(ctx context.Context, input *model.UpdateDisplayNameInput) (*model.User, error)
}
