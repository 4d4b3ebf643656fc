package testhelper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// TestAllCommits runs all test cases for CommitRepository. dir is used to create owning repositories.
func TestAllCommits(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	t.Run("EmptyHistory", func(t *testing.T) {
		TestEmptyHistory(t, dir, commits)
	})
	t.Run("AppendAndList", func(t *testing.T) {
		TestAppendAndList(t, dir, commits)
	})
	t.Run("IdempotentAppend", func(t *testing.T) {
		TestIdempotentAppend(t, dir, commits)
	})
	t.Run("StaleParent", func(t *testing.T) {
		TestStaleParent(t, dir, commits)
	})
	t.Run("InvalidParent", func(t *testing.T) {
		TestInvalidParent(t, dir, commits)
	})
	t.Run("TimestampTie", func(t *testing.T) {
		TestTimestampTie(t, dir, commits)
	})
	t.Run("ConcurrentAppend", func(t *testing.T) {
		TestConcurrentAppend(t, dir, commits)
	})
}

var treeHash = types.HashContent([]byte(`{"entries":[]}`))

func setupRepository(t *testing.T, dir interfaces.Directory) (*model.User, *model.Repository) {
	t.Helper()
	ctx := context.Background()

	owner := NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, owner))
	repo := NewRepository(owner.ID)
	gt.NoError(t, dir.CreateRepository(ctx, repo))
	return owner, repo
}

// NewCommit builds a commit on top of parent
func NewCommit(repo *model.Repository, owner *model.User, parent types.CommitHash, msg string, ts time.Time) *model.Commit {
	author := model.Identity{ID: owner.ID, Username: owner.Username}
	return model.NewCommit(repo.ID, parent, treeHash, author, owner.Username.String(), msg, ts)
}

// TestEmptyHistory tests a repository without commits
func TestEmptyHistory(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	_, repo := setupRepository(t, dir)

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.HashOf()).Equal(types.CommitHash(""))

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(0)

	_, err = commits.GetCommit(ctx, repo.ID, types.CommitHash(treeHash))
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestAppendAndList appends a linear history and reads it back newest first
func TestAppendAndList(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	base := time.Now().UTC()

	c1 := NewCommit(repo, owner, "", "first", base)
	gt.NoError(t, commits.AppendCommit(ctx, c1))

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(c1.Hash)
	gt.V(t, head.Seq).Equal(int64(1))

	c2 := NewCommit(repo, owner, c1.Hash, "second", base.Add(time.Second))
	gt.NoError(t, commits.AppendCommit(ctx, c2))
	c3 := NewCommit(repo, owner, c2.Hash, "third", base.Add(2*time.Second))
	gt.NoError(t, commits.AppendCommit(ctx, c3))

	head, err = commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(c3.Hash)
	gt.V(t, head.Seq).Equal(int64(3))

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(3)
	gt.V(t, list[0].Hash).Equal(c3.Hash)
	gt.V(t, list[1].Hash).Equal(c2.Hash)
	gt.V(t, list[2].Hash).Equal(c1.Hash)
	for i := 1; i < len(list); i++ {
		gt.False(t, list[i].Timestamp.After(list[i-1].Timestamp))
	}

	limited, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{Limit: 2})
	gt.NoError(t, err)
	gt.A(t, limited).Length(2)
	gt.V(t, limited[0].Hash).Equal(c3.Hash)

	got, err := commits.GetCommit(ctx, repo.ID, c2.Hash)
	gt.NoError(t, err)
	gt.V(t, got.Parent).Equal(c1.Hash)
	gt.V(t, got.Message).Equal("second")
	gt.V(t, got.TreeHash).Equal(treeHash)
	gt.V(t, got.AuthorID).Equal(owner.ID)
	gt.V(t, got.Seq).Equal(int64(2))
	gt.True(t, got.Timestamp.Equal(c2.Timestamp))
	gt.NoError(t, got.Verify())

	// commits are scoped to their repository
	_, other := setupRepository(t, dir)
	_, err = commits.GetCommit(ctx, other.ID, c2.Hash)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestIdempotentAppend re-appends the same commit
func TestIdempotentAppend(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	base := time.Now().UTC()

	c1 := NewCommit(repo, owner, "", "first", base)
	gt.NoError(t, commits.AppendCommit(ctx, c1))
	c2 := NewCommit(repo, owner, c1.Hash, "second", base.Add(time.Second))
	gt.NoError(t, commits.AppendCommit(ctx, c2))

	// c1 again after the head moved is still a success and changes nothing
	again := *c1
	again.Seq = 0
	gt.NoError(t, commits.AppendCommit(ctx, &again))

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(c2.Hash)

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(2)
}

// TestStaleParent tests head compare-and-swap
func TestStaleParent(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	base := time.Now().UTC()

	c1 := NewCommit(repo, owner, "", "first", base)
	gt.NoError(t, commits.AppendCommit(ctx, c1))
	c2 := NewCommit(repo, owner, c1.Hash, "second", base.Add(time.Second))
	gt.NoError(t, commits.AppendCommit(ctx, c2))

	// Based on c1, but head is c2
	stale := NewCommit(repo, owner, c1.Hash, "stale", base.Add(2*time.Second))
	err := commits.AppendCommit(ctx, stale)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrConflict))

	// Root commit on a non-empty repository
	root := NewCommit(repo, owner, "", "another root", base.Add(3*time.Second))
	err = commits.AppendCommit(ctx, root)
	gt.True(t, errors.Is(err, types.ErrConflict))

	// Nothing from the failed appends is visible
	_, err = commits.GetCommit(ctx, repo.ID, stale.Hash)
	gt.True(t, errors.Is(err, types.ErrNotFound))
	_, err = commits.GetCommit(ctx, repo.ID, root.Hash)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(c2.Hash)

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(2)
}

// TestInvalidParent tests parent validation and hash verification
func TestInvalidParent(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	otherOwner, otherRepo := setupRepository(t, dir)
	base := time.Now().UTC()

	foreign := NewCommit(otherRepo, otherOwner, "", "foreign", base)
	gt.NoError(t, commits.AppendCommit(ctx, foreign))

	// Parent belongs to another repository
	c := NewCommit(repo, owner, foreign.Hash, "child of foreign", base)
	err := commits.AppendCommit(ctx, c)
	gt.True(t, errors.Is(err, types.ErrValidationFailed))

	// Hash does not match fields
	tampered := NewCommit(repo, owner, "", "first", base)
	tampered.Message = "changed after hashing"
	err = commits.AppendCommit(ctx, tampered)
	gt.True(t, errors.Is(err, types.ErrValidationFailed))

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.HashOf()).Equal(types.CommitHash(""))
}

// TestTimestampTie tests that equal timestamps are ordered by later insertion first
func TestTimestampTie(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	ts := time.Now().UTC()

	c1 := NewCommit(repo, owner, "", "first", ts)
	gt.NoError(t, commits.AppendCommit(ctx, c1))
	c2 := NewCommit(repo, owner, c1.Hash, "second", ts)
	gt.NoError(t, commits.AppendCommit(ctx, c2))
	c3 := NewCommit(repo, owner, c2.Hash, "third", ts)
	gt.NoError(t, commits.AppendCommit(ctx, c3))

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(3)
	gt.V(t, list[0].Hash).Equal(c3.Hash)
	gt.V(t, list[1].Hash).Equal(c2.Hash)
	gt.V(t, list[2].Hash).Equal(c1.Hash)
}

// TestConcurrentAppend races commits declaring the same parent; exactly one wins
func TestConcurrentAppend(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	ctx := context.Background()
	owner, repo := setupRepository(t, dir)
	base := time.Now().UTC()

	c1 := NewCommit(repo, owner, "", "first", base)
	gt.NoError(t, commits.AppendCommit(ctx, c1))

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []types.CommitHash
		conflicts int
		others    []error
	)
	for i := 0; i < n; i++ {
		c := NewCommit(repo, owner, c1.Hash, "racer", base.Add(time.Duration(i+1)*time.Millisecond))
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := commits.AppendCommit(ctx, c)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes = append(successes, c.Hash)
			case errors.Is(err, types.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	gt.A(t, others).Length(0)
	gt.A(t, successes).Length(1)
	gt.V(t, conflicts).Equal(n - 1)

	head, err := commits.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(successes[0])

	list, err := commits.ListCommits(ctx, repo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, list).Length(2)
}
