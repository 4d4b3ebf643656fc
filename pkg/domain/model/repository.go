package model

import (
	"regexp"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// Repository is a code repository owned by exactly one user
type Repository struct {
	ID          types.RepositoryID `json:"id" firestore:"id"`
	OwnerID     types.UserID       `json:"ownerId" firestore:"owner_id"`
	Name        string             `json:"name" firestore:"name"`
	Description string             `json:"description,omitempty" firestore:"description"`
	Visibility  types.Visibility   `json:"visibility" firestore:"visibility"`
	CreatedAt   time.Time          `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" firestore:"updated_at"`
}

func (x *Repository) IsPrivate() bool {
	return x.Visibility == types.VisibilityPrivate
}

// VisibleTo reports whether the caller may read the repository
func (x *Repository) VisibleTo(caller Identity) bool {
	if !x.IsPrivate() {
		return true
	}
	return !caller.IsZero() && caller.ID == x.OwnerID
}

// SortRepositories orders repositories newest first, then by name
func SortRepositories(repos []*Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		if !repos[i].CreatedAt.Equal(repos[j].CreatedAt) {
			return repos[i].CreatedAt.After(repos[j].CreatedAt)
		}
		return repos[i].Name < repos[j].Name
	})
}

const (
	minRepositoryNameLength = 5
	maxRepositoryNameLength = 50
	maxDescriptionLength    = 200
)

var ptnRepositoryName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateRepositoryName checks the name is usable as a URL path segment
func ValidateRepositoryName(name string) error {
	if len(name) < minRepositoryNameLength || len(name) > maxRepositoryNameLength {
		return goerr.Wrap(types.ErrValidationFailed, "repository name must be 5 to 50 characters",
			goerr.V("name", name),
		)
	}
	if !ptnRepositoryName.MatchString(name) || name == "." || name == ".." {
		return goerr.Wrap(types.ErrValidationFailed, "repository name contains invalid characters",
			goerr.V("name", name),
		)
	}
	return nil
}

type CreateRepositoryInput struct {
	Caller      Identity
	Name        string
	Description string
	Visibility  types.Visibility
}

func (x *CreateRepositoryInput) Validate() error {
	if x.Caller.IsZero() {
		return goerr.Wrap(types.ErrUnauthenticated, "caller identity is required")
	}
	if err := ValidateRepositoryName(x.Name); err != nil {
		return err
	}
	if len([]rune(x.Description)) > maxDescriptionLength {
		return goerr.Wrap(types.ErrValidationFailed, "description must be 200 characters or less")
	}
	if err := x.Visibility.Validate(); err != nil {
		return err
	}
	return nil
}

// RepositoryView is a repository as returned to the presentation layer
type RepositoryView struct {
	Repository
	Owner types.Username   `json:"owner"`
	Head  types.CommitHash `json:"headHash,omitempty"`
}

// Decision is the result of an authorization check
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (x Decision) String() string {
	if x == Allow {
		return "allow"
	}
	return "deny"
}
