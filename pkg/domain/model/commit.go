package model

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// Commit is an immutable history record. Hash is derived from every other field except Seq.
type Commit struct {
	Hash         types.CommitHash   `json:"hash" firestore:"hash"`
	RepositoryID types.RepositoryID `json:"repositoryId" firestore:"repository_id"`
	Parent       types.CommitHash   `json:"parentHash,omitempty" firestore:"parent"`
	TreeHash     types.ContentHash  `json:"treeHash" firestore:"tree_hash"`
	Message      string             `json:"message" firestore:"message"`
	AuthorName   string             `json:"authorName" firestore:"author_name"`
	AuthorID     types.UserID       `json:"authorId" firestore:"author_id"`
	Timestamp    time.Time          `json:"timestamp" firestore:"timestamp"`

	// Seq is the 1-based insertion position in the repository history, assigned by the commit store
	Seq int64 `json:"seq" firestore:"seq"`
}

// NewCommit normalizes fields and computes the hash
func NewCommit(repoID types.RepositoryID, parent types.CommitHash, tree types.ContentHash, author Identity, authorName, message string, ts time.Time) *Commit {
	commit := &Commit{
		RepositoryID: repoID,
		Parent:       parent,
		TreeHash:     tree,
		Message:      normalizeText(message),
		AuthorName:   strings.TrimSpace(authorName),
		AuthorID:     author.ID,
		Timestamp:    NormalizeTimestamp(ts),
	}
	commit.Hash = commit.ComputeHash()
	return commit
}

// NormalizeTimestamp truncates to the precision every backend can persist
func NormalizeTimestamp(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Microsecond)
}

func normalizeText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// ComputeHash returns the content-derived identity of the commit
func (x *Commit) ComputeHash() types.CommitHash {
	fields := []string{
		"repository " + x.RepositoryID.String(),
		"parent " + x.Parent.String(),
		"tree " + x.TreeHash.String(),
		"author-id " + x.AuthorID.String(),
		"author " + x.AuthorName,
		"timestamp " + NormalizeTimestamp(x.Timestamp).Format(time.RFC3339Nano),
		"",
		x.Message,
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "\n")))
	return types.CommitHash(hex.EncodeToString(sum[:]))
}

// Verify checks the record is well formed and its hash matches its fields
func (x *Commit) Verify() error {
	if x.RepositoryID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository ID is required")
	}
	if err := x.TreeHash.Validate(); err != nil {
		return err
	}
	if x.Parent != "" {
		if err := x.Parent.Validate(); err != nil {
			return err
		}
	}
	if x.Message == "" {
		return goerr.Wrap(types.ErrValidationFailed, "commit message is required")
	}
	if expected := x.ComputeHash(); x.Hash != expected {
		return goerr.Wrap(types.ErrValidationFailed, "commit hash does not match its fields",
			goerr.V("hash", x.Hash),
			goerr.V("expected", expected),
		)
	}
	return nil
}

// Head is the latest commit of a repository
type Head struct {
	RepositoryID types.RepositoryID `json:"repositoryId" firestore:"repository_id"`
	CommitHash   types.CommitHash   `json:"commitHash" firestore:"commit_hash"`
	Seq          int64              `json:"seq" firestore:"seq"`
	UpdatedAt    time.Time          `json:"updatedAt" firestore:"updated_at"`
}

// HashOf returns the head commit hash, or empty for an empty repository
func (x *Head) HashOf() types.CommitHash {
	if x == nil {
		return ""
	}
	return x.CommitHash
}

type ListCommitsOptions struct {
	// Limit is the max number of commits, 0 means no limit
	Limit int
}

// SortCommits orders commits newest first, later insertion first on equal timestamps
func SortCommits(commits []*Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		a, b := commits[i], commits[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.Seq > b.Seq
	})
}
