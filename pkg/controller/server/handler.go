package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, h.cfg.maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return goerr.Wrap(types.ErrValidationFailed, "request body is not valid JSON", goerr.V("error", err.Error()))
	}
	return nil
}

func repositoryRef(r *http.Request) model.RepositoryRef {
	return model.RepositoryRef{
		Caller: identityFrom(r.Context()),
		Owner:  types.Username(chi.URLParam(r, "owner")),
		Name:   chi.URLParam(r, "repo"),
	}
}

type createRepositoryRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Visibility  types.Visibility `json:"visibility"`
}

func (h *handler) createRepository(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRepositoryRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, "invalid create repository request", err)
		return
	}
	if req.Visibility == "" {
		req.Visibility = types.VisibilityPublic
	}

	view, err := h.uc.CreateRepository(ctx, &model.CreateRepositoryInput{
		Caller:      identityFrom(ctx),
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		writeError(ctx, w, "fail to create repository", err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *handler) listOwnRepositories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views, err := h.uc.ListRepositories(ctx, identityFrom(ctx), "")
	if err != nil {
		writeError(ctx, w, "fail to list repositories", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repositories": views})
}

func (h *handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := types.Username(chi.URLParam(r, "owner"))

	views, err := h.uc.ListRepositories(ctx, identityFrom(ctx), owner)
	if err != nil {
		writeError(ctx, w, "fail to list repositories", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repositories": views})
}

func (h *handler) getRepository(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.uc.GetRepository(ctx, repositoryRef(r))
	if err != nil {
		writeError(ctx, w, "fail to get repository", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type submitCommitRequest struct {
	Message    string             `json:"message"`
	AuthorName string             `json:"authorName"`
	ParentHash types.CommitHash   `json:"parentHash"`
	Changes    []model.FileChange `json:"changes"`
}

func (h *handler) submitCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := repositoryRef(r)

	var timeout time.Duration
	if v := r.URL.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeError(ctx, w, "invalid timeout", goerr.Wrap(types.ErrValidationFailed, "timeout must be a positive duration", goerr.V("timeout", v)))
			return
		}
		timeout = d
	}

	var req submitCommitRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, "invalid commit request", err)
		return
	}

	resp, err := h.uc.SubmitCommit(ctx, &model.SubmitCommitInput{
		Caller:     ref.Caller,
		Owner:      ref.Owner,
		Repository: ref.Name,
		Message:    req.Message,
		AuthorName: req.AuthorName,
		ParentHash: req.ParentHash,
		Changes:    req.Changes,
		Timeout:    timeout,
	})
	if err != nil {
		writeError(ctx, w, "fail to submit commit", err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) listCommits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var opts model.ListCommitsOptions
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(ctx, w, "invalid limit", goerr.Wrap(types.ErrValidationFailed, "limit must be a non-negative integer", goerr.V("limit", v)))
			return
		}
		opts.Limit = limit
	}

	commits, err := h.uc.ListCommits(ctx, repositoryRef(r), opts)
	if err != nil {
		writeError(ctx, w, "fail to list commits", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"commits": commits})
}

func (h *handler) getCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, err := h.uc.GetCommit(ctx, repositoryRef(r), types.CommitHash(chi.URLParam(r, "hash")))
	if err != nil {
		writeError(ctx, w, "fail to get commit", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *handler) getCommitDiff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	diff, err := h.uc.GetCommitDiff(ctx, repositoryRef(r), types.CommitHash(chi.URLParam(r, "hash")))
	if err != nil {
		writeError(ctx, w, "fail to get commit diff", err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

func (h *handler) getFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := h.uc.GetFile(ctx, repositoryRef(r), types.CommitHash(chi.URLParam(r, "hash")), chi.URLParam(r, "*"))
	if err != nil {
		writeError(ctx, w, "fail to get file", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	safeWrite(w, http.StatusOK, data)
}

type updateDisplayNameRequest struct {
	DisplayName string `json:"displayName"`
}

func (h *handler) updateDisplayName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateDisplayNameRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, "invalid display name request", err)
		return
	}

	user, err := h.uc.UpdateDisplayName(ctx, &model.UpdateDisplayNameInput{
		Caller:      identityFrom(ctx),
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeError(ctx, w, "fail to update display name", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
