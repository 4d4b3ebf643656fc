package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/controller/server"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type importRequest struct {
	Message    string             `json:"message"`
	AuthorName string             `json:"authorName,omitempty"`
	ParentHash types.CommitHash   `json:"parentHash,omitempty"`
	Changes    []model.FileChange `json:"changes"`
}

func importCommand() *cli.Command {
	var (
		dir        string
		owner      string
		repoName   string
		apiURL     string
		identity   model.Identity
		message    string
		parentHash string
	)

	return &cli.Command{
		Name:  "import",
		Usage: "Submit the HEAD tree of a local git repository as one commit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Path to local git repository",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Owner username of target repository (auto-detect from git remote if not specified)",
				Sources:     cli.EnvVars("REPOHOST_IMPORT_OWNER"),
				Destination: &owner,
			},
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "Name of target repository (auto-detect from git remote if not specified)",
				Sources:     cli.EnvVars("REPOHOST_IMPORT_REPO"),
				Destination: &repoName,
			},
			&cli.StringFlag{
				Name:        "api",
				Usage:       "Base URL of repohost server",
				Value:       "http://127.0.0.1:8000",
				Sources:     cli.EnvVars("REPOHOST_API"),
				Destination: &apiURL,
			},
			&cli.StringFlag{
				Name:        "identity-id",
				Usage:       "Caller user ID sent as identity header",
				Sources:     cli.EnvVars("REPOHOST_IDENTITY_ID"),
				Destination: (*string)(&identity.ID),
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "identity-username",
				Usage:       "Caller username sent as identity header",
				Sources:     cli.EnvVars("REPOHOST_IDENTITY_USERNAME"),
				Destination: (*string)(&identity.Username),
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "Commit message (HEAD commit message if not specified)",
				Destination: &message,
			},
			&cli.StringFlag{
				Name:        "parent-hash",
				Usage:       "Expected current head of target repository",
				Destination: &parentHash,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if owner == "" || repoName == "" {
				detectedOwner, detectedRepo, err := DetectRemoteRepository(dir)
				if err != nil {
					return goerr.Wrap(err, "owner and repo are required when git remote is not available")
				}
				if owner == "" {
					owner = detectedOwner
				}
				if repoName == "" {
					repoName = detectedRepo
				}
			}

			snapshot, err := ReadGitSnapshot(dir)
			if err != nil {
				return err
			}
			for _, p := range snapshot.Skipped {
				logging.From(ctx).Warn("skip binary file", slog.String("path", p))
			}
			if message == "" {
				message = snapshot.Message
			}

			req := snapshotRequest(snapshot, message, types.CommitHash(parentHash))
			result, err := postCommit(ctx, infra.New().HTTPClient(), apiURL, identity, owner, repoName, req)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("imported",
				slog.String("git_commit", snapshot.CommitID),
				slog.String("owner", owner),
				slog.String("repo", repoName),
				slog.Int("files", len(req.Changes)),
				slog.Any("commit_hash", result.CommitHash),
			)
			return nil
		},
	}
}

func snapshotRequest(snapshot *GitSnapshot, message string, parent types.CommitHash) *importRequest {
	paths := make([]string, 0, len(snapshot.Files))
	for p := range snapshot.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	req := &importRequest{
		Message:    message,
		AuthorName: snapshot.AuthorName,
		ParentHash: parent,
		Changes:    make([]model.FileChange, 0, len(paths)),
	}
	for _, p := range paths {
		content := snapshot.Files[p]
		req.Changes = append(req.Changes, model.FileChange{Path: p, Content: &content})
	}
	return req
}

func postCommit(ctx context.Context, client infra.HTTPClient, apiURL string, identity model.Identity, owner, repoName string, req *importRequest) (*model.SubmitCommitResult, error) {
	endpoint, err := url.JoinPath(apiURL, "repositories", owner, repoName, "commits")
	if err != nil {
		return nil, goerr.Wrap(err, "invalid API URL", goerr.V("api", apiURL))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal commit request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", endpoint))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(server.HeaderIdentityID, identity.ID.String())
	httpReq.Header.Set(server.HeaderIdentityUsername, identity.Username.String())

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send commit request", goerr.V("endpoint", endpoint))
	}
	defer safe.Close(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response", goerr.V("endpoint", endpoint))
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, goerr.New("commit request is rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.V("request_id", resp.Header.Get(server.HeaderRequestID)),
		)
	}

	var result model.SubmitCommitResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response", goerr.V("body", string(respBody)))
	}
	return &result, nil
}
