package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// FileChange is a single change in a proposed commit: new content for a path, or its deletion
type FileChange struct {
	Path    string  `json:"path"`
	Content *string `json:"content,omitempty"`
	Delete  bool    `json:"delete,omitempty"`
}

const (
	maxPathLength    = 1024
	maxMessageLength = 65536
	maxChanges       = 10000
)

// ValidatePath accepts slash separated relative paths without empty, "." or ".." segments
func ValidatePath(path string) error {
	if path == "" {
		return goerr.Wrap(types.ErrValidationFailed, "path is empty")
	}
	if len(path) > maxPathLength {
		return goerr.Wrap(types.ErrValidationFailed, "path is too long", goerr.V("path", path))
	}
	if strings.HasPrefix(path, "/") || strings.ContainsAny(path, "\\\x00") {
		return goerr.Wrap(types.ErrValidationFailed, "path must be relative and slash separated", goerr.V("path", path))
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return goerr.Wrap(types.ErrValidationFailed, "path has an invalid segment", goerr.V("path", path))
		}
	}
	return nil
}

func (x *FileChange) Validate() error {
	if err := ValidatePath(x.Path); err != nil {
		return err
	}
	if x.Delete == (x.Content != nil) {
		return goerr.Wrap(types.ErrValidationFailed, "either content or delete must be set", goerr.V("path", x.Path))
	}
	return nil
}

// SubmitCommitInput is a proposed commit from an authenticated caller
type SubmitCommitInput struct {
	Caller     Identity
	Owner      types.Username
	Repository string
	Message    string
	AuthorName string
	// ParentHash is the head the caller based the commit on. Empty means current head.
	ParentHash types.CommitHash
	Changes    []FileChange
	// Timeout bounds the whole submission when positive
	Timeout time.Duration
}

func (x *SubmitCommitInput) Validate() error {
	if x.Caller.IsZero() {
		return goerr.Wrap(types.ErrUnauthenticated, "caller identity is required")
	}
	if x.Owner == "" || x.Repository == "" {
		return goerr.Wrap(types.ErrValidationFailed, "target repository is required")
	}
	if strings.TrimSpace(x.Message) == "" {
		return goerr.Wrap(types.ErrValidationFailed, "commit message is required")
	}
	if len(x.Message) > maxMessageLength {
		return goerr.Wrap(types.ErrValidationFailed, "commit message is too long")
	}
	if x.ParentHash != "" {
		if err := x.ParentHash.Validate(); err != nil {
			return err
		}
	}
	if len(x.Changes) == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "at least one change is required")
	}
	if len(x.Changes) > maxChanges {
		return goerr.Wrap(types.ErrValidationFailed, "too many changes", goerr.V("count", len(x.Changes)))
	}

	seen := make(map[string]struct{}, len(x.Changes))
	for i := range x.Changes {
		if err := x.Changes[i].Validate(); err != nil {
			return err
		}
		if _, ok := seen[x.Changes[i].Path]; ok {
			return goerr.Wrap(types.ErrValidationFailed, "duplicated path in changes", goerr.V("path", x.Changes[i].Path))
		}
		seen[x.Changes[i].Path] = struct{}{}
	}
	if x.Timeout < 0 {
		return goerr.Wrap(types.ErrValidationFailed, "timeout must not be negative")
	}

	return nil
}

// AuthorNameOrDefault returns the declared author name, or the caller username when it is blank
func (x *SubmitCommitInput) AuthorNameOrDefault() string {
	if name := strings.TrimSpace(x.AuthorName); name != "" {
		return name
	}
	return x.Caller.Username.String()
}

type SubmitCommitResult struct {
	CommitHash types.CommitHash `json:"commitHash"`
	HeadHash   types.CommitHash `json:"headHash"`
}

// RepositoryRef addresses a repository by owner username and name, read on behalf of Caller
type RepositoryRef struct {
	Caller Identity
	Owner  types.Username
	Name   string
}

// CommitDetail is a commit with its file list
type CommitDetail struct {
	Commit
	Files []TreeEntry `json:"files"`
}

// CommitDiff is the difference between a commit and its parent
type CommitDiff struct {
	CommitHash types.CommitHash `json:"commitHash"`
	ParentHash types.CommitHash `json:"parentHash,omitempty"`
	Files      []FileDiff       `json:"files"`
}
