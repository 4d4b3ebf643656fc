package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/mock"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra"
	contentmemory "github.com/m-mizutani/repohost/pkg/infra/content/memory"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

func initInput(caller model.Identity) *model.SubmitCommitInput {
	return &model.SubmitCommitInput{
		Caller:     caller,
		Owner:      "alice",
		Repository: "demo",
		Message:    "init",
		Changes: []model.FileChange{
			{Path: "a.txt", Content: ptr("hi")},
		},
	}
}

func TestSubmitCommitScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)
	gt.V(t, resp.CommitHash).NotEqual(types.CommitHash(""))
	gt.V(t, resp.HeadHash).Equal(resp.CommitHash)

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(resp.CommitHash)

	_, err = f.uc.SubmitCommit(ctx, initInput(bob))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrForbidden))

	head, err = f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(resp.CommitHash)
}

func TestSubmitCommitNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("unknown repository", func(t *testing.T) {
		input := initInput(alice)
		input.Repository = "nothing"
		_, err := f.uc.SubmitCommit(ctx, input)
		gt.True(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("unknown owner", func(t *testing.T) {
		input := initInput(alice)
		input.Owner = "carol"
		_, err := f.uc.SubmitCommit(ctx, input)
		gt.True(t, errors.Is(err, types.ErrNotFound))
	})
}

func TestSubmitCommitForbiddenOnPrivate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	private := &model.Repository{
		ID:         types.NewRepositoryID(),
		OwnerID:    alice.ID,
		Name:       "secret",
		Visibility: types.VisibilityPrivate,
		CreatedAt:  time.Now().UTC(),
	}
	gt.NoError(t, f.repo.CreateRepository(ctx, private))

	input := initInput(bob)
	input.Repository = "secret"
	_, err := f.uc.SubmitCommit(ctx, input)
	gt.True(t, errors.Is(err, types.ErrForbidden))
}

func TestSubmitCommitValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("missing message", func(t *testing.T) {
		input := initInput(alice)
		input.Message = "  "
		_, err := f.uc.SubmitCommit(ctx, input)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := f.uc.SubmitCommit(ctx, initInput(model.Identity{}))
		gt.True(t, errors.Is(err, types.ErrUnauthenticated))
	})

	t.Run("deleting unknown file", func(t *testing.T) {
		input := initInput(alice)
		input.Changes = []model.FileChange{{Path: "missing.txt", Delete: true}}
		_, err := f.uc.SubmitCommit(ctx, input)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("unknown parent", func(t *testing.T) {
		input := initInput(alice)
		input.ParentHash = types.CommitHash(types.HashContent([]byte("nothing")).String())
		_, err := f.uc.SubmitCommit(ctx, input)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head).Equal(nil)
}

func TestSubmitCommitBuildsTree(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ref := model.RepositoryRef{Caller: bob, Owner: "alice", Name: "demo"}

	first, err := f.uc.SubmitCommit(ctx, &model.SubmitCommitInput{
		Caller:     alice,
		Owner:      "alice",
		Repository: "demo",
		Message:    "init",
		AuthorName: "Alice Liddell",
		Changes: []model.FileChange{
			{Path: "README.md", Content: ptr("hello\n")},
			{Path: "src/main.go", Content: ptr("package main\n")},
		},
	})
	gt.NoError(t, err)

	second, err := f.uc.SubmitCommit(ctx, &model.SubmitCommitInput{
		Caller:     alice,
		Owner:      "alice",
		Repository: "demo",
		Message:    "update",
		ParentHash: first.CommitHash,
		Changes: []model.FileChange{
			{Path: "README.md", Content: ptr("hello\nworld\n")},
			{Path: "src/main.go", Delete: true},
			{Path: "docs/guide.md", Content: ptr("# guide\n")},
		},
	})
	gt.NoError(t, err)

	t.Run("commit detail has the new tree", func(t *testing.T) {
		detail, err := f.uc.GetCommit(ctx, ref, second.CommitHash)
		gt.NoError(t, err)
		gt.V(t, detail.Parent).Equal(first.CommitHash)
		gt.V(t, detail.AuthorName).Equal("alice")
		gt.A(t, detail.Files).Length(2)
		gt.V(t, detail.Files[0].Path).Equal("README.md")
		gt.V(t, detail.Files[0].Size).Equal(int64(12))
		gt.V(t, detail.Files[1].Path).Equal("docs/guide.md")

		detail, err = f.uc.GetCommit(ctx, ref, first.CommitHash)
		gt.NoError(t, err)
		gt.V(t, detail.AuthorName).Equal("Alice Liddell")
		gt.A(t, detail.Files).Length(2)
	})

	t.Run("history is newest first", func(t *testing.T) {
		commits, err := f.uc.ListCommits(ctx, ref, model.ListCommitsOptions{})
		gt.NoError(t, err)
		gt.A(t, commits).Length(2)
		gt.V(t, commits[0].Hash).Equal(second.CommitHash)
		gt.V(t, commits[1].Hash).Equal(first.CommitHash)

		commits, err = f.uc.ListCommits(ctx, ref, model.ListCommitsOptions{Limit: 1})
		gt.NoError(t, err)
		gt.A(t, commits).Length(1)
	})

	t.Run("files are readable at each commit", func(t *testing.T) {
		data, err := f.uc.GetFile(ctx, ref, first.CommitHash, "src/main.go")
		gt.NoError(t, err)
		gt.V(t, string(data)).Equal("package main\n")

		_, err = f.uc.GetFile(ctx, ref, second.CommitHash, "src/main.go")
		gt.True(t, errors.Is(err, types.ErrNotFound))

		_, err = f.uc.GetFile(ctx, ref, second.CommitHash, "../etc/passwd")
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("diff against parent", func(t *testing.T) {
		diff, err := f.uc.GetCommitDiff(ctx, ref, second.CommitHash)
		gt.NoError(t, err)
		gt.V(t, diff.ParentHash).Equal(first.CommitHash)
		gt.A(t, diff.Files).Length(3)

		byPath := map[string]model.FileDiff{}
		for _, d := range diff.Files {
			byPath[d.Path] = d
		}
		gt.V(t, byPath["README.md"].Status).Equal(model.DiffModified)
		gt.V(t, byPath["docs/guide.md"].Status).Equal(model.DiffAdded)
		gt.V(t, byPath["src/main.go"].Status).Equal(model.DiffDeleted)
		gt.S(t, byPath["README.md"].Patch).Contains("+world")
		gt.S(t, byPath["src/main.go"].Patch).Contains("+++ /dev/null")
	})

	t.Run("first commit diff is all additions", func(t *testing.T) {
		diff, err := f.uc.GetCommitDiff(ctx, ref, first.CommitHash)
		gt.NoError(t, err)
		gt.V(t, diff.ParentHash).Equal(types.CommitHash(""))
		gt.A(t, diff.Files).Length(2)
		for _, d := range diff.Files {
			gt.V(t, d.Status).Equal(model.DiffAdded)
		}
	})
}

func TestSubmitCommitStaleParent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	h1, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)

	input := initInput(alice)
	input.Message = "second"
	input.ParentHash = h1.CommitHash
	h2, err := f.uc.SubmitCommit(ctx, input)
	gt.NoError(t, err)

	input = initInput(alice)
	input.Message = "stale"
	input.ParentHash = h1.CommitHash
	_, err = f.uc.SubmitCommit(ctx, input)
	gt.True(t, errors.Is(err, types.ErrConflict))

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(h2.CommitHash)
}

func TestSubmitCommitConcurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	h1, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)

	const racers = 2
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []types.CommitHash
		conflicts int
	)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := initInput(alice)
			input.ParentHash = h1.CommitHash
			input.Message = "racer"
			input.Changes = []model.FileChange{{Path: "a.txt", Content: ptr(string(rune('A' + i)))}}

			resp, err := f.uc.SubmitCommit(ctx, input)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes = append(successes, resp.HeadHash)
			case errors.Is(err, types.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %+v", err)
			}
		}(i)
	}
	wg.Wait()

	gt.A(t, successes).Length(1)
	gt.V(t, conflicts).Equal(racers - 1)

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(successes[0])
}

func TestSubmitCommitTimeout(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	input := initInput(alice)
	input.Timeout = time.Nanosecond
	_, err := f.uc.SubmitCommit(ctx, input)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, context.DeadlineExceeded))

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head).Equal(nil)
	commits, err := f.repo.ListCommits(ctx, f.demo.ID, model.ListCommitsOptions{})
	gt.NoError(t, err)
	gt.A(t, commits).Length(0)
}

func TestSubmitCommitIntegrityViolation(t *testing.T) {
	store := &mock.ContentStoreMock{
		PutFunc: func(ctx context.Context, data []byte) (types.ContentHash, error) {
			return "", types.ErrIntegrityViolation
		},
	}
	f := setup(t, infra.WithContentStore(store))
	ctx := context.Background()

	_, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.True(t, errors.Is(err, types.ErrIntegrityViolation))
	gt.A(t, store.PutCalls()).Length(1)

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head).Equal(nil)
}

func TestSubmitCommitUnavailableStore(t *testing.T) {
	content := contentmemory.New()
	calls := 0
	store := &mock.ContentStoreMock{
		PutFunc: func(ctx context.Context, data []byte) (types.ContentHash, error) {
			calls++
			if calls == 1 {
				return "", errors.New("connection refused")
			}
			return content.Put(ctx, data)
		},
		GetFunc: content.Get,
		HasFunc: content.Has,
	}
	f := setup(t, infra.WithContentStore(store))

	resp, err := f.uc.SubmitCommit(context.Background(), initInput(alice))
	gt.NoError(t, err)
	gt.V(t, resp.HeadHash).Equal(resp.CommitHash)
}

func TestSubmitCommitDeterministicHash(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return ts })

	f1 := setup(t)
	f2 := setup(t)

	r1, err := f1.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)
	r2, err := f2.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)

	// repositories differ, so identical submissions yield distinct hashes
	gt.V(t, r1.CommitHash).NotEqual(r2.CommitHash)

	c1, err := f1.repo.GetCommit(ctx, f1.demo.ID, r1.CommitHash)
	gt.NoError(t, err)
	gt.V(t, c1.Timestamp).Equal(ts)
	gt.V(t, c1.ComputeHash()).Equal(r1.CommitHash)
}

func TestSubmitCommitReplayReportsCurrentHead(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return ts })
	f := setup(t)

	first, err := f.uc.SubmitCommit(ctx, initInput(alice))
	gt.NoError(t, err)

	second := initInput(alice)
	second.Message = "second"
	second.ParentHash = first.CommitHash
	r2, err := f.uc.SubmitCommit(ctx, second)
	gt.NoError(t, err)

	third := initInput(alice)
	third.Message = "third"
	third.ParentHash = r2.CommitHash
	r3, err := f.uc.SubmitCommit(ctx, third)
	gt.NoError(t, err)

	// identical submission at the same instant is the same commit and does not move the head
	replay, err := f.uc.SubmitCommit(ctx, second)
	gt.NoError(t, err)
	gt.V(t, replay.CommitHash).Equal(r2.CommitHash)
	gt.V(t, replay.HeadHash).Equal(r3.CommitHash)

	head, err := f.repo.GetHead(ctx, f.demo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(r3.CommitHash)
}

func TestSubmitCommitExport(t *testing.T) {
	t.Run("export creates table and inserts event", func(t *testing.T) {
		var inserted *model.CommitEvent
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				inserted = data.(*model.CommitEvent)
				return nil
			},
		}
		f := setup(t, infra.WithBigQuery(bq))

		resp, err := f.uc.SubmitCommit(context.Background(), initInput(alice))
		gt.NoError(t, err)
		gt.A(t, bq.CreateTableCalls()).Length(1)
		gt.V(t, inserted.CommitHash).Equal(resp.CommitHash)
		gt.V(t, inserted.Owner).Equal(types.Username("alice"))
		gt.V(t, inserted.Repository).Equal("demo")
		gt.V(t, inserted.ChangedFiles).Equal(1)
	})

	t.Run("export failure does not fail the commit", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("bigquery is down")
			},
		}
		f := setup(t, infra.WithBigQuery(bq))

		resp, err := f.uc.SubmitCommit(context.Background(), initInput(alice))
		gt.NoError(t, err)
		gt.V(t, resp.HeadHash).Equal(resp.CommitHash)
		gt.A(t, bq.InsertCalls()).Length(0)
	})
}
