package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "repohost"

	// maxWatchAttempts bounds optimistic retries when the watched head key changes under us
	maxWatchAttempts = 8
)

// Repository stores commit history and heads in Redis. Head updates use WATCH on the head key
// so that a concurrent append aborts the transaction.
type Repository struct {
	client    *redis.Client
	keyPrefix string
}

var _ interfaces.CommitRepository = (*Repository)(nil)

type Option func(*Repository)

func WithKeyPrefix(prefix string) Option {
	return func(r *Repository) {
		r.keyPrefix = prefix
	}
}

func New(client *redis.Client, opts ...Option) *Repository {
	r := &Repository{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dial connects to the server and checks it responds
func Dial(ctx context.Context, addr string, password types.RedisPassword, db int, opts ...Option) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: string(password),
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr))
	}

	return New(client, opts...), nil
}

func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return nil
}

func (r *Repository) commitKey(repoID types.RepositoryID, hash types.CommitHash) string {
	return r.keyPrefix + ":commit:" + repoID.String() + ":" + hash.String()
}

func (r *Repository) headKey(repoID types.RepositoryID) string {
	return r.keyPrefix + ":head:" + repoID.String()
}

func (r *Repository) historyKey(repoID types.RepositoryID) string {
	return r.keyPrefix + ":commits:" + repoID.String()
}

func getJSON[T any](ctx context.Context, cmd redis.Cmdable, key string) (*T, error) {
	raw, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get key", goerr.V("key", key))
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, goerr.Wrap(types.ErrIntegrityViolation, "stored record is not decodable",
			goerr.V("key", key),
			goerr.V("error", err.Error()),
		)
	}
	return &v, nil
}

func (r *Repository) AppendCommit(ctx context.Context, commit *model.Commit) error {
	if err := commit.Verify(); err != nil {
		return err
	}

	headKey := r.headKey(commit.RepositoryID)
	commitKey := r.commitKey(commit.RepositoryID, commit.Hash)

	for attempt := 0; attempt < maxWatchAttempts; attempt++ {
		var seq int64
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			existing, err := getJSON[model.Commit](ctx, tx, commitKey)
			if err != nil {
				return err
			}
			if existing != nil {
				seq = existing.Seq
				return nil
			}

			if commit.Parent != "" {
				n, err := tx.Exists(ctx, r.commitKey(commit.RepositoryID, commit.Parent)).Result()
				if err != nil {
					return goerr.Wrap(err, "failed to look up parent commit")
				}
				if n == 0 {
					return goerr.Wrap(types.ErrValidationFailed, "parent commit does not exist in the repository",
						goerr.V("repoID", commit.RepositoryID),
						goerr.V("parent", commit.Parent),
					)
				}
			}

			head, err := getJSON[model.Head](ctx, tx, headKey)
			if err != nil {
				return err
			}
			if current := head.HashOf(); current != commit.Parent {
				return goerr.Wrap(types.ErrConflict, "repository head has moved",
					goerr.V("repoID", commit.RepositoryID),
					goerr.V("head", current),
					goerr.V("parent", commit.Parent),
				)
			}

			seq = 1
			if head != nil {
				seq = head.Seq + 1
			}

			stored := *commit
			stored.Seq = seq
			commitRaw, err := json.Marshal(&stored)
			if err != nil {
				return goerr.Wrap(err, "failed to marshal commit")
			}
			headRaw, err := json.Marshal(&model.Head{
				RepositoryID: commit.RepositoryID,
				CommitHash:   commit.Hash,
				Seq:          seq,
				UpdatedAt:    commit.Timestamp,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to marshal head")
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, commitKey, commitRaw, 0)
				pipe.Set(ctx, headKey, headRaw, 0)
				pipe.ZAdd(ctx, r.historyKey(commit.RepositoryID), redis.Z{Score: float64(seq), Member: commit.Hash.String()})
				return nil
			})
			return err
		}, headKey, commitKey)

		if err == nil {
			commit.Seq = seq
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return goerr.Wrap(err, "failed to append commit",
			goerr.V("repoID", commit.RepositoryID),
			goerr.V("hash", commit.Hash),
		)
	}

	return goerr.Wrap(types.ErrConflict, "repository head kept moving",
		goerr.V("repoID", commit.RepositoryID),
		goerr.V("attempts", maxWatchAttempts),
	)
}

func (r *Repository) GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error) {
	commit, err := getJSON[model.Commit](ctx, r.client, r.commitKey(repoID, hash))
	if err != nil {
		return nil, err
	}
	if commit == nil {
		return nil, goerr.Wrap(types.ErrNotFound, "commit not found",
			goerr.V("repoID", repoID),
			goerr.V("hash", hash),
		)
	}
	return commit, nil
}

func (r *Repository) ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	hashes, err := r.client.ZRevRange(ctx, r.historyKey(repoID), 0, -1).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commit hashes", goerr.V("repoID", repoID))
	}

	commits := []*model.Commit{}
	if len(hashes) == 0 {
		return commits, nil
	}

	keys := make([]string, len(hashes))
	for i, h := range hashes {
		keys[i] = r.commitKey(repoID, types.CommitHash(h))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get commits", goerr.V("repoID", repoID))
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			return nil, goerr.Wrap(types.ErrIntegrityViolation, "commit listed in history is missing",
				goerr.V("repoID", repoID),
				goerr.V("hash", hashes[i]),
			)
		}
		var commit model.Commit
		if err := json.Unmarshal([]byte(raw), &commit); err != nil {
			return nil, goerr.Wrap(types.ErrIntegrityViolation, "stored commit is not decodable",
				goerr.V("hash", hashes[i]),
				goerr.V("error", err.Error()),
			)
		}
		commits = append(commits, &commit)
	}

	model.SortCommits(commits)
	if opts.Limit > 0 && len(commits) > opts.Limit {
		commits = commits[:opts.Limit]
	}
	return commits, nil
}

func (r *Repository) GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error) {
	return getJSON[model.Head](ctx, r.client, r.headKey(repoID))
}
