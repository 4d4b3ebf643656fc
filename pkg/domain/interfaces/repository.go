package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

//go:generate moq -out ../mock/repository.go -pkg mock . Directory CommitRepository

// DirectoryReader is the read side of users and repositories used by authorization and intake
type DirectoryReader interface {
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username types.Username) (*model.User, error)
	GetRepository(ctx context.Context, ownerID types.UserID, name string) (*model.Repository, error)
	GetRepositoryByID(ctx context.Context, id types.RepositoryID) (*model.Repository, error)
	ListRepositories(ctx context.Context, ownerID types.UserID) ([]*model.Repository, error)
}

// Directory manages users and repositories
type Directory interface {
	DirectoryReader

	// UpsertUser creates or updates the user keyed by its ID. A username held by another user is types.ErrConflict.
	// An existing user keeps its display name and creation time.
	UpsertUser(ctx context.Context, user *model.User) error
	// UpdateDisplayName sets only the display name and update time of an existing user, or fails with types.ErrNotFound.
	UpdateDisplayName(ctx context.Context, id types.UserID, displayName string, updatedAt time.Time) (*model.User, error)
	// CreateRepository fails with types.ErrConflict when the owner already has a repository of the same name.
	CreateRepository(ctx context.Context, repo *model.Repository) error
}

// CommitRepository is the append-only, hash-linked commit history of repositories
type CommitRepository interface {
	// AppendCommit records the commit and moves the head from commit.Parent to commit.Hash atomically.
	// It fails with types.ErrConflict if the head is no longer commit.Parent. Appending a commit
	// already recorded in the same repository is a success and does not move the head.
	AppendCommit(ctx context.Context, commit *model.Commit) error
	GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error)
	// ListCommits returns commits newest first, ties broken by later insertion first
	ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error)
	// GetHead returns nil without error for a repository without commits
	GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error)
}
