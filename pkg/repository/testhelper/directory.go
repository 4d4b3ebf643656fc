package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// TestAll runs all test cases for Directory and CommitRepository
// This is the main entry point for testing a storage backend implementing both
func TestAll(t *testing.T, dir interfaces.Directory, commits interfaces.CommitRepository) {
	t.Run("Directory", func(t *testing.T) {
		TestAllDirectory(t, dir)
	})
	t.Run("Commits", func(t *testing.T) {
		TestAllCommits(t, dir, commits)
	})
}

// TestAllDirectory runs all test cases for Directory
func TestAllDirectory(t *testing.T, dir interfaces.Directory) {
	t.Run("UserUpsert", func(t *testing.T) {
		TestUserUpsert(t, dir)
	})
	t.Run("UsernameConflict", func(t *testing.T) {
		TestUsernameConflict(t, dir)
	})
	t.Run("UpdateDisplayName", func(t *testing.T) {
		TestUpdateDisplayName(t, dir)
	})
	t.Run("RepositoryCreate", func(t *testing.T) {
		TestRepositoryCreate(t, dir)
	})
	t.Run("RepositoryDuplicateName", func(t *testing.T) {
		TestRepositoryDuplicateName(t, dir)
	})
}

func uniq(prefix string) string {
	return fmt.Sprintf("%s%s", prefix, uuid.New().String()[:8])
}

// NewUser builds a user with unique ID and username
func NewUser() *model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.User{
		ID:        types.UserID(uniq("user_")),
		Username:  types.Username(uniq("name-")),
		Email:     "someone@example.com",
		FirstName: "Some",
		LastName:  "One",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewRepository builds a repository owned by ownerID with a unique name
func NewRepository(ownerID types.UserID) *model.Repository {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Repository{
		ID:          types.NewRepositoryID(),
		OwnerID:     ownerID,
		Name:        uniq("repo-"),
		Description: "test repository",
		Visibility:  types.VisibilityPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TestUserUpsert tests creating and updating a user keyed by external ID
func TestUserUpsert(t *testing.T, dir interfaces.Directory) {
	ctx := context.Background()
	user := NewUser()

	gt.NoError(t, dir.UpsertUser(ctx, user))

	got, err := dir.GetUser(ctx, user.ID)
	gt.NoError(t, err)
	gt.V(t, got.Username).Equal(user.Username)
	gt.V(t, got.Email).Equal(user.Email)

	byName, err := dir.GetUserByUsername(ctx, user.Username)
	gt.NoError(t, err)
	gt.V(t, byName.ID).Equal(user.ID)

	// Update with a new username; the old one is released
	oldName := user.Username
	user.Username = types.Username(uniq("renamed-"))
	user.DisplayName = "Someone"
	gt.NoError(t, dir.UpsertUser(ctx, user))
	// Same event delivered twice
	gt.NoError(t, dir.UpsertUser(ctx, user))

	got, err = dir.GetUser(ctx, user.ID)
	gt.NoError(t, err)
	gt.V(t, got.Username).Equal(user.Username)
	gt.V(t, got.DisplayName).Equal("")

	_, err = dir.GetUserByUsername(ctx, oldName)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	_, err = dir.GetUser(ctx, types.UserID(uniq("user_missing")))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestUpdateDisplayName tests that display name and profile fields are written by separate operations
// without overwriting each other
func TestUpdateDisplayName(t *testing.T, dir interfaces.Directory) {
	ctx := context.Background()
	user := NewUser()
	user.DisplayName = "Initial"
	gt.NoError(t, dir.UpsertUser(ctx, user))

	got, err := dir.GetUser(ctx, user.ID)
	gt.NoError(t, err)
	gt.V(t, got.DisplayName).Equal("Initial")

	later := user.UpdatedAt.Add(time.Minute)
	updated, err := dir.UpdateDisplayName(ctx, user.ID, "Chosen Name", later)
	gt.NoError(t, err)
	gt.V(t, updated.DisplayName).Equal("Chosen Name")
	gt.V(t, updated.Username).Equal(user.Username)
	gt.V(t, updated.Email).Equal(user.Email)
	gt.V(t, updated.UpdatedAt.Equal(later)).Equal(true)

	// a profile sync carrying a stale display name does not overwrite it
	profile := *user
	profile.Email = "changed@example.com"
	profile.DisplayName = ""
	profile.CreatedAt = later.Add(time.Hour)
	profile.UpdatedAt = later.Add(time.Hour)
	gt.NoError(t, dir.UpsertUser(ctx, &profile))

	got, err = dir.GetUser(ctx, user.ID)
	gt.NoError(t, err)
	gt.V(t, got.DisplayName).Equal("Chosen Name")
	gt.V(t, got.Email).Equal("changed@example.com")
	gt.V(t, got.CreatedAt.Equal(user.CreatedAt)).Equal(true)

	_, err = dir.UpdateDisplayName(ctx, types.UserID(uniq("user_missing")), "x", later)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestUsernameConflict tests that a username held by another user is rejected
func TestUsernameConflict(t *testing.T, dir interfaces.Directory) {
	ctx := context.Background()
	alice := NewUser()
	bob := NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, alice))
	gt.NoError(t, dir.UpsertUser(ctx, bob))

	bob.Username = alice.Username
	err := dir.UpsertUser(ctx, bob)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrConflict))

	got, err := dir.GetUserByUsername(ctx, alice.Username)
	gt.NoError(t, err)
	gt.V(t, got.ID).Equal(alice.ID)
}

// TestRepositoryCreate tests creating and looking up repositories
func TestRepositoryCreate(t *testing.T, dir interfaces.Directory) {
	ctx := context.Background()
	owner := NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, owner))

	repo1 := NewRepository(owner.ID)
	repo2 := NewRepository(owner.ID)
	repo2.Visibility = types.VisibilityPrivate
	repo2.CreatedAt = repo1.CreatedAt.Add(time.Second)
	gt.NoError(t, dir.CreateRepository(ctx, repo1))
	gt.NoError(t, dir.CreateRepository(ctx, repo2))

	got, err := dir.GetRepository(ctx, owner.ID, repo1.Name)
	gt.NoError(t, err)
	gt.V(t, got.ID).Equal(repo1.ID)
	gt.V(t, got.OwnerID).Equal(owner.ID)
	gt.V(t, got.Description).Equal(repo1.Description)
	gt.V(t, got.Visibility).Equal(types.VisibilityPublic)

	byID, err := dir.GetRepositoryByID(ctx, repo2.ID)
	gt.NoError(t, err)
	gt.V(t, byID.Name).Equal(repo2.Name)
	gt.V(t, byID.Visibility).Equal(types.VisibilityPrivate)

	repos, err := dir.ListRepositories(ctx, owner.ID)
	gt.NoError(t, err)
	gt.A(t, repos).Length(2)
	gt.V(t, repos[0].ID).Equal(repo2.ID)
	gt.V(t, repos[1].ID).Equal(repo1.ID)

	_, err = dir.GetRepository(ctx, owner.ID, uniq("missing-"))
	gt.True(t, errors.Is(err, types.ErrNotFound))

	_, err = dir.GetRepositoryByID(ctx, types.NewRepositoryID())
	gt.True(t, errors.Is(err, types.ErrNotFound))

	other := NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, other))
	repos, err = dir.ListRepositories(ctx, other.ID)
	gt.NoError(t, err)
	gt.A(t, repos).Length(0)
}

// TestRepositoryDuplicateName tests that (owner, name) pairs are unique
func TestRepositoryDuplicateName(t *testing.T, dir interfaces.Directory) {
	ctx := context.Background()
	alice := NewUser()
	bob := NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, alice))
	gt.NoError(t, dir.UpsertUser(ctx, bob))

	repo := NewRepository(alice.ID)
	gt.NoError(t, dir.CreateRepository(ctx, repo))

	dup := NewRepository(alice.ID)
	dup.Name = repo.Name
	err := dir.CreateRepository(ctx, dup)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrConflict))

	_, err = dir.GetRepositoryByID(ctx, dup.ID)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	// Same name under another owner is fine
	sameName := NewRepository(bob.ID)
	sameName.Name = repo.Name
	gt.NoError(t, dir.CreateRepository(ctx, sameName))
}
