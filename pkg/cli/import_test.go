package cli_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/cli"
	"github.com/m-mizutani/repohost/pkg/controller/server"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra"
	"github.com/m-mizutani/repohost/pkg/repository/memory"
	"github.com/m-mizutani/repohost/pkg/usecase"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	gt.NoError(t, repo.UpsertUser(ctx, &model.User{ID: "user_alice0001", Username: "alice", CreatedAt: now, UpdatedAt: now}))
	demo := &model.Repository{
		ID:         types.NewRepositoryID(),
		OwnerID:    "user_alice0001",
		Name:       "demo",
		Visibility: types.VisibilityPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	gt.NoError(t, repo.CreateRepository(ctx, demo))

	uc := usecase.New(infra.New(infra.WithDirectory(repo), infra.WithCommitRepository(repo)))
	ts := httptest.NewServer(server.New(uc).Mux())
	defer ts.Close()

	dir := initGitRepo(t, map[string][]byte{
		"README.md":   []byte("# demo\n"),
		"src/main.go": []byte("package main\n"),
	})

	args := []string{"repohost", "import",
		"--dir", dir,
		"--api", ts.URL,
		"--owner", "alice",
		"--repo", "demo",
		"--identity-id", "user_alice0001",
		"--identity-username", "alice",
	}

	t.Run("imports HEAD tree as one commit", func(t *testing.T) {
		gt.NoError(t, cli.New().Run(args))

		commits := gt.R1(repo.ListCommits(ctx, demo.ID, model.ListCommitsOptions{})).NoError(t)
		gt.A(t, commits).Length(1)
		gt.V(t, commits[0].Message).Equal("initial import")
		gt.V(t, commits[0].AuthorName).Equal("Alice")

		head := gt.R1(repo.GetHead(ctx, demo.ID)).NoError(t)
		gt.V(t, head.HashOf()).Equal(commits[0].Hash)
	})

	t.Run("stale parent is rejected", func(t *testing.T) {
		stale := "0000000000000000000000000000000000000000000000000000000000000000"
		gt.Error(t, cli.New().Run(append(args, "--parent-hash", stale)))
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		gt.Error(t, cli.New().Run([]string{"repohost", "import",
			"--dir", dir,
			"--api", ts.URL,
			"--owner", "alice",
			"--repo", "demo",
			"--identity-id", "user_mallory01",
		}))
	})
}
