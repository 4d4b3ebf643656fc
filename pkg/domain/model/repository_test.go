package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

func TestCreateRepositoryInputValidate(t *testing.T) {
	valid := func() *model.CreateRepositoryInput {
		return &model.CreateRepositoryInput{
			Caller:     testAuthor,
			Name:       "demo-repo",
			Visibility: types.VisibilityPublic,
		}
	}

	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, valid().Validate())
	})

	t.Run("name too short", func(t *testing.T) {
		input := valid()
		input.Name = "demo"
		gt.True(t, errors.Is(input.Validate(), types.ErrValidationFailed))
	})

	t.Run("name too long", func(t *testing.T) {
		input := valid()
		input.Name = strings.Repeat("a", 51)
		gt.Error(t, input.Validate())
	})

	t.Run("name with slash", func(t *testing.T) {
		input := valid()
		input.Name = "demo/repo"
		gt.Error(t, input.Validate())
	})

	t.Run("description too long", func(t *testing.T) {
		input := valid()
		input.Description = strings.Repeat("x", 201)
		gt.Error(t, input.Validate())
	})

	t.Run("unknown visibility", func(t *testing.T) {
		input := valid()
		input.Visibility = "internal"
		gt.Error(t, input.Validate())
	})
}

func TestRepositoryVisibleTo(t *testing.T) {
	repo := &model.Repository{OwnerID: "user_a", Visibility: types.VisibilityPrivate}
	gt.True(t, repo.VisibleTo(model.Identity{ID: "user_a"}))
	gt.False(t, repo.VisibleTo(model.Identity{ID: "user_b"}))
	gt.False(t, repo.VisibleTo(model.Identity{}))

	repo.Visibility = types.VisibilityPublic
	gt.True(t, repo.VisibleTo(model.Identity{}))
}
