package memory

import (
	"sync"

	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

type history struct {
	byHash  map[types.CommitHash]*model.Commit
	commits []*model.Commit
	head    *model.Head
}

// Repository is an in-memory Directory and CommitRepository
type Repository struct {
	mu sync.RWMutex

	users     map[types.UserID]*model.User
	usernames map[types.Username]types.UserID

	repos     map[types.RepositoryID]*model.Repository
	repoNames map[string]types.RepositoryID

	histories map[types.RepositoryID]*history
}

var (
	_ interfaces.Directory        = (*Repository)(nil)
	_ interfaces.CommitRepository = (*Repository)(nil)
)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		users:     make(map[types.UserID]*model.User),
		usernames: make(map[types.Username]types.UserID),
		repos:     make(map[types.RepositoryID]*model.Repository),
		repoNames: make(map[string]types.RepositoryID),
		histories: make(map[types.RepositoryID]*history),
	}
}

func repoNameKey(ownerID types.UserID, name string) string {
	return string(ownerID) + ":" + name
}

func copyUser(user *model.User) *model.User {
	copied := *user
	return &copied
}

func copyRepository(repo *model.Repository) *model.Repository {
	copied := *repo
	return &copied
}

func copyCommit(commit *model.Commit) *model.Commit {
	copied := *commit
	return &copied
}
