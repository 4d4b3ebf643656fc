package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/controller/server"
	"github.com/m-mizutani/repohost/pkg/domain/mock"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra"
	"github.com/m-mizutani/repohost/pkg/repository/memory"
	"github.com/m-mizutani/repohost/pkg/usecase"
	"github.com/m-mizutani/repohost/pkg/utils/retry"
)

var (
	alice = model.Identity{ID: "user_alice0001", Username: "alice"}
	bob   = model.Identity{ID: "user_bob000001", Username: "bob"}
)

// newTestServer serves a memory backend seeded with alice, bob and the public repository alice/demo
func newTestServer(t *testing.T, options ...server.Option) *server.Server {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	now := time.Now().UTC().Truncate(time.Microsecond)
	for _, id := range []model.Identity{alice, bob} {
		gt.NoError(t, repo.UpsertUser(ctx, &model.User{
			ID:        id.ID,
			Username:  id.Username,
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}
	gt.NoError(t, repo.CreateRepository(ctx, &model.Repository{
		ID:         types.NewRepositoryID(),
		OwnerID:    alice.ID,
		Name:       "demo",
		Visibility: types.VisibilityPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	clients := infra.New(
		infra.WithDirectory(repo),
		infra.WithCommitRepository(repo),
		infra.WithRetryPolicy(retry.Policy{Attempts: 2, BaseDelay: time.Millisecond}),
	)
	return server.New(usecase.New(clients), options...)
}

func do(t *testing.T, srv *server.Server, method, path string, caller *model.Identity, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw := gt.R1(json.Marshal(body)).NoError(t)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(server.HeaderIdentityID, caller.ID.String())
		req.Header.Set(server.HeaderIdentityUsername, caller.Username.String())
	}

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func commitBody(message string, parent types.CommitHash, path, content string) map[string]any {
	body := map[string]any{
		"message": message,
		"changes": []map[string]any{
			{"path": path, "content": content},
		},
	}
	if parent != "" {
		body["parentHash"] = parent
	}
	return body
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) model.SubmitCommitResult {
	t.Helper()
	var result model.SubmitCommitResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestRouterSmokeTests(t *testing.T) {
	t.Run("GET /health returns 200", func(t *testing.T) {
		srv := server.New(usecase.New(infra.New()))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
		gt.V(t, rec.Header().Get(server.HeaderRequestID)).NotEqual("")
	})

	t.Run("unknown route returns 404", func(t *testing.T) {
		srv := server.New(usecase.New(infra.New()))
		rec := do(t, srv, http.MethodGet, "/no/such/route", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestSubmitCommit(t *testing.T) {
	commitsPath := "/repositories/alice/demo/commits"

	t.Run("owner commits and non-owner is forbidden", func(t *testing.T) {
		srv := newTestServer(t)

		rec := do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("init", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusCreated)
		gt.S(t, rec.Header().Get("Content-Type")).Contains("application/json")

		result := decodeResult(t, rec)
		gt.NoError(t, result.CommitHash.Validate())
		gt.V(t, result.HeadHash).Equal(result.CommitHash)

		rec = do(t, srv, http.MethodPost, commitsPath, &bob, commitBody("takeover", "", "a.txt", "bob"))
		gt.V(t, rec.Code).Equal(http.StatusForbidden)
		gt.V(t, errorCode(t, rec)).Equal("forbidden")

		repoRec := do(t, srv, http.MethodGet, "/repositories/alice/demo", nil, nil)
		gt.V(t, repoRec.Code).Equal(http.StatusOK)
		var view model.RepositoryView
		gt.NoError(t, json.Unmarshal(repoRec.Body.Bytes(), &view))
		gt.V(t, view.Head).Equal(result.CommitHash)
	})

	t.Run("missing repository is 404", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, "/repositories/alice/nothing/commits", &alice, commitBody("init", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
		gt.V(t, errorCode(t, rec)).Equal("not_found")
	})

	t.Run("anonymous caller is 401", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, commitsPath, nil, commitBody("init", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
		gt.V(t, errorCode(t, rec)).Equal("unauthenticated")
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, commitsPath, bytes.NewReader([]byte(`{"message":`)))
		req.Header.Set(server.HeaderIdentityID, alice.ID.String())
		req.Header.Set(server.HeaderIdentityUsername, alice.Username.String())
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, errorCode(t, rec)).Equal("validation_failed")
	})

	t.Run("missing message is 400", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("invalid timeout is 400", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, commitsPath+"?timeout=soon", &alice, commitBody("init", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("expired timeout is 504 and leaves no commit", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, commitsPath+"?timeout=1ns", &alice, commitBody("init", "", "a.txt", "hi"))
		gt.V(t, rec.Code).Equal(http.StatusGatewayTimeout)
		gt.V(t, errorCode(t, rec)).Equal("timeout")

		listRec := do(t, srv, http.MethodGet, commitsPath, nil, nil)
		gt.V(t, listRec.Code).Equal(http.StatusOK)
		var list struct {
			Commits []*model.Commit `json:"commits"`
		}
		gt.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
		gt.A(t, list.Commits).Length(0)
	})

	t.Run("stale parent is 409", func(t *testing.T) {
		srv := newTestServer(t)

		h1 := decodeResult(t, do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("init", "", "a.txt", "1")))
		rec := do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("second", h1.CommitHash, "a.txt", "2"))
		gt.V(t, rec.Code).Equal(http.StatusCreated)

		rec = do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("stale", h1.CommitHash, "a.txt", "3"))
		gt.V(t, rec.Code).Equal(http.StatusConflict)
		gt.V(t, errorCode(t, rec)).Equal("conflict")
	})

	t.Run("concurrent commits on the same parent yield one 201 and one 409", func(t *testing.T) {
		srv := newTestServer(t)
		h1 := decodeResult(t, do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("init", "", "a.txt", "hi")))

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				body := commitBody("concurrent", h1.CommitHash, "b.txt", []string{"left", "right"}[i])
				codes[i] = do(t, srv, http.MethodPost, commitsPath, &alice, body).Code
			}(i)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		gt.V(t, created).Equal(1)
		gt.V(t, conflicted).Equal(1)
	})
}

func TestReadEndpoints(t *testing.T) {
	srv := newTestServer(t)
	commitsPath := "/repositories/alice/demo/commits"

	h1 := decodeResult(t, do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("init", "", "docs/a.txt", "hello\n")))
	h2 := decodeResult(t, do(t, srv, http.MethodPost, commitsPath, &alice, commitBody("update", h1.CommitHash, "docs/a.txt", "hello\nworld\n")))

	t.Run("list commits newest first with limit", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"?limit=1", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var list struct {
			Commits []*model.Commit `json:"commits"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		gt.A(t, list.Commits).Length(1)
		gt.V(t, list.Commits[0].Hash).Equal(h2.CommitHash)
	})

	t.Run("negative limit is 400", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"?limit=-1", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("get commit with files", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"/"+h2.CommitHash.String(), nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var detail model.CommitDetail
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		gt.V(t, detail.Parent).Equal(h1.CommitHash)
		gt.A(t, detail.Files).Length(1)
	})

	t.Run("get commit diff", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"/"+h2.CommitHash.String()+"/diff", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.S(t, rec.Body.String()).Contains("+world")
	})

	t.Run("get raw file", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"/"+h1.CommitHash.String()+"/files/docs/a.txt", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("hello\n")
		gt.V(t, rec.Header().Get("Content-Type")).Equal("application/octet-stream")
	})

	t.Run("missing file is 404", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, commitsPath+"/"+h1.CommitHash.String()+"/files/nothing.txt", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestRepositoryEndpoints(t *testing.T) {
	t.Run("create, get and list", func(t *testing.T) {
		srv := newTestServer(t)

		rec := do(t, srv, http.MethodPost, "/repositories", &bob, map[string]any{
			"name":        "secret",
			"description": "private notes",
			"visibility":  "private",
		})
		gt.V(t, rec.Code).Equal(http.StatusCreated)

		rec = do(t, srv, http.MethodGet, "/repositories/bob/secret", &bob, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		// private repositories are hidden from others
		rec = do(t, srv, http.MethodGet, "/repositories/bob/secret", &alice, nil)
		gt.V(t, rec.Code).Equal(http.StatusNotFound)

		rec = do(t, srv, http.MethodGet, "/repositories", &bob, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		var list struct {
			Repositories []*model.RepositoryView `json:"repositories"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		gt.A(t, list.Repositories).Length(1)

		rec = do(t, srv, http.MethodGet, "/users/alice/repositories", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("duplicate name is 409", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, "/repositories", &alice, map[string]any{"name": "widgets"})
		gt.V(t, rec.Code).Equal(http.StatusCreated)

		rec = do(t, srv, http.MethodPost, "/repositories", &alice, map[string]any{"name": "widgets"})
		gt.V(t, rec.Code).Equal(http.StatusConflict)
		gt.V(t, errorCode(t, rec)).Equal("conflict")

		// same name under another owner is allowed
		rec = do(t, srv, http.MethodPost, "/repositories", &bob, map[string]any{"name": "widgets"})
		gt.V(t, rec.Code).Equal(http.StatusCreated)
	})

	t.Run("creating requires identity", func(t *testing.T) {
		srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, "/repositories", nil, map[string]any{"name": "x"})
		gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestUpdateDisplayName(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPut, "/user/display-name", &alice, map[string]any{"displayName": "  Alice A.  "})
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var user model.User
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	gt.V(t, user.DisplayName).Equal("Alice A.")
}

func TestErrorMapping(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"integrity violation", types.ErrIntegrityViolation, http.StatusInternalServerError, "integrity_violation"},
		{"unavailable", types.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"unknown", context.Canceled, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUC := &mock.UseCaseMock{
				SubmitCommitFunc: func(ctx context.Context, input *model.SubmitCommitInput) (*model.SubmitCommitResult, error) {
					return nil, tc.err
				},
			}
			srv := server.New(mockUC)

			rec := do(t, srv, http.MethodPost, "/repositories/alice/demo/commits", &alice, commitBody("init", "", "a.txt", "hi"))
			gt.V(t, rec.Code).Equal(tc.status)
			gt.V(t, errorCode(t, rec)).Equal(tc.code)
			gt.A(t, mockUC.SubmitCommitCalls()).Length(1)
		})
	}

	t.Run("request fields reach the usecase", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			SubmitCommitFunc: func(ctx context.Context, input *model.SubmitCommitInput) (*model.SubmitCommitResult, error) {
				return &model.SubmitCommitResult{}, nil
			},
		}
		srv := server.New(mockUC)

		rec := do(t, srv, http.MethodPost, "/repositories/alice/demo/commits?timeout=5s", &alice, map[string]any{
			"message":    "msg",
			"authorName": "Alice",
			"changes":    []map[string]any{{"path": "old.txt", "delete": true}},
		})
		gt.V(t, rec.Code).Equal(http.StatusCreated)

		calls := mockUC.SubmitCommitCalls()
		gt.A(t, calls).Length(1)
		input := calls[0].Input
		gt.V(t, input.Caller).Equal(alice)
		gt.V(t, input.Owner).Equal(types.Username("alice"))
		gt.V(t, input.Repository).Equal("demo")
		gt.V(t, input.AuthorName).Equal("Alice")
		gt.V(t, input.Timeout).Equal(5 * time.Second)
		gt.A(t, input.Changes).Length(1)
		gt.True(t, input.Changes[0].Delete)
	})
}

func TestMaxBodySize(t *testing.T) {
	srv := newTestServer(t, server.WithMaxBodySize(16))
	rec := do(t, srv, http.MethodPost, "/repositories/alice/demo/commits", &alice, commitBody("init", "", "a.txt", "a long enough body"))
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}
