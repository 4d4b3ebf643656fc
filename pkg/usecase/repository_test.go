package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

func TestCreateRepository(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
		Caller:      bob,
		Name:        "my-project",
		Description: "first project",
		Visibility:  types.VisibilityPrivate,
	})
	gt.NoError(t, err)
	gt.V(t, view.Owner).Equal(types.Username("bob"))
	gt.V(t, view.OwnerID).Equal(bob.ID)
	gt.V(t, view.Head).Equal(types.CommitHash(""))

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := f.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
			Caller:     bob,
			Name:       "my-project",
			Visibility: types.VisibilityPublic,
		})
		gt.True(t, errors.Is(err, types.ErrConflict))
	})

	t.Run("same name under another owner is allowed", func(t *testing.T) {
		_, err := f.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
			Caller:     alice,
			Name:       "my-project",
			Visibility: types.VisibilityPublic,
		})
		gt.NoError(t, err)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := f.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
			Caller:     bob,
			Name:       "a b",
			Visibility: types.VisibilityPublic,
		})
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, err := f.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
			Caller:     model.Identity{ID: "user_ghost", Username: "ghost"},
			Name:       "ghost-repo",
			Visibility: types.VisibilityPublic,
		})
		gt.True(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("private repository is hidden from others", func(t *testing.T) {
		ref := model.RepositoryRef{Caller: alice, Owner: "bob", Name: "my-project"}
		_, err := f.uc.GetRepository(ctx, ref)
		gt.True(t, errors.Is(err, types.ErrNotFound))

		_, err = f.uc.ListCommits(ctx, ref, model.ListCommitsOptions{})
		gt.True(t, errors.Is(err, types.ErrNotFound))

		ref.Caller = bob
		got, err := f.uc.GetRepository(ctx, ref)
		gt.NoError(t, err)
		gt.V(t, got.ID).Equal(view.ID)
	})
}

func TestListRepositories(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	later := logging.CtxWithTime(ctx, func() time.Time { return time.Now().Add(time.Minute) })
	_, err := f.uc.CreateRepository(later, &model.CreateRepositoryInput{
		Caller:     alice,
		Name:       "hidden",
		Visibility: types.VisibilityPrivate,
	})
	gt.NoError(t, err)

	resp, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)

	t.Run("owner sees all", func(t *testing.T) {
		views, err := f.uc.ListRepositories(ctx, alice, "")
		gt.NoError(t, err)
		gt.A(t, views).Length(2)
		gt.V(t, views[0].Name).Equal("hidden")
		gt.V(t, views[1].Name).Equal("demo")
		gt.V(t, views[1].Head).Equal(resp.CommitHash)
	})

	t.Run("others see public only", func(t *testing.T) {
		views, err := f.uc.ListRepositories(ctx, bob, "alice")
		gt.NoError(t, err)
		gt.A(t, views).Length(1)
		gt.V(t, views[0].Name).Equal("demo")
	})

	t.Run("anonymous without owner", func(t *testing.T) {
		_, err := f.uc.ListRepositories(ctx, model.Identity{}, "")
		gt.True(t, errors.Is(err, types.ErrUnauthenticated))
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := f.uc.ListRepositories(ctx, bob, "carol")
		gt.True(t, errors.Is(err, types.ErrNotFound))
	})
}
