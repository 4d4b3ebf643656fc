package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
)

const commitColumns = `hash, repository_id, parent, tree_hash, message, author_name, author_id, committed_at, seq`

func scanCommit(row rowScanner) (*model.Commit, error) {
	var c model.Commit
	if err := row.Scan(
		&c.Hash, &c.RepositoryID, &c.Parent, &c.TreeHash, &c.Message,
		&c.AuthorName, &c.AuthorID, &c.Timestamp, &c.Seq,
	); err != nil {
		return nil, err
	}
	c.Timestamp = c.Timestamp.UTC()
	return &c, nil
}

func commitExists(ctx context.Context, tx *sql.Tx, repoID types.RepositoryID, hash types.CommitHash) (bool, int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx, `SELECT seq FROM commits WHERE repository_id = $1 AND hash = $2`, repoID, hash).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, goerr.Wrap(err, "failed to look up commit", goerr.V("repoID", repoID), goerr.V("hash", hash))
	}
	return true, seq, nil
}

// AppendCommit locks the head row (or claims it with an insert for the first commit) so
// concurrent appends to the same repository serialize on it.
func (r *Repository) AppendCommit(ctx context.Context, commit *model.Commit) error {
	if err := commit.Verify(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx)

	if exists, seq, err := commitExists(ctx, tx, commit.RepositoryID, commit.Hash); err != nil {
		return err
	} else if exists {
		commit.Seq = seq
		return nil
	}

	if commit.Parent != "" {
		exists, _, err := commitExists(ctx, tx, commit.RepositoryID, commit.Parent)
		if err != nil {
			return err
		}
		if !exists {
			return goerr.Wrap(types.ErrValidationFailed, "parent commit does not exist in the repository",
				goerr.V("repoID", commit.RepositoryID),
				goerr.V("parent", commit.Parent),
			)
		}
	}

	var (
		current types.CommitHash
		seq     int64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT commit_hash, seq FROM heads WHERE repository_id = $1 FOR UPDATE`,
		commit.RepositoryID,
	).Scan(&current, &seq)
	hasHead := true
	if errors.Is(err, sql.ErrNoRows) {
		hasHead = false
	} else if err != nil {
		return goerr.Wrap(err, "failed to lock head", goerr.V("repoID", commit.RepositoryID))
	}

	conflict := func() error {
		return goerr.Wrap(types.ErrConflict, "repository head has moved",
			goerr.V("repoID", commit.RepositoryID),
			goerr.V("head", current),
			goerr.V("parent", commit.Parent),
		)
	}
	if current == commit.Hash {
		// the same commit was appended concurrently
		commit.Seq = seq
		return nil
	}
	if current != commit.Parent {
		return conflict()
	}

	commit.Seq = seq + 1

	var res sql.Result
	if hasHead {
		res, err = tx.ExecContext(ctx,
			`UPDATE heads SET commit_hash = $2, seq = $3, updated_at = $4 WHERE repository_id = $1 AND commit_hash = $5`,
			commit.RepositoryID, commit.Hash, commit.Seq, commit.Timestamp, commit.Parent,
		)
	} else {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO heads (repository_id, commit_hash, seq, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (repository_id) DO NOTHING`,
			commit.RepositoryID, commit.Hash, commit.Seq, commit.Timestamp,
		)
	}
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return goerr.Wrap(types.ErrNotFound, "repository does not exist", goerr.V("repoID", commit.RepositoryID))
		}
		return goerr.Wrap(err, "failed to move head", goerr.V("repoID", commit.RepositoryID))
	}
	if n, err := res.RowsAffected(); err != nil {
		return goerr.Wrap(err, "failed to get affected rows")
	} else if n != 1 {
		return conflict()
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO commits (`+commitColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		commit.Hash, commit.RepositoryID, commit.Parent, commit.TreeHash, commit.Message,
		commit.AuthorName, commit.AuthorID, commit.Timestamp, commit.Seq,
	); err != nil {
		if pqCode(err) == codeUniqueViolation {
			return conflict()
		}
		return goerr.Wrap(err, "failed to insert commit", goerr.V("hash", commit.Hash))
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit transaction", goerr.V("hash", commit.Hash))
	}
	return nil
}

func (r *Repository) GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commitColumns+` FROM commits WHERE repository_id = $1 AND hash = $2`, repoID, hash)
	commit, err := scanCommit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "commit not found", goerr.V("repoID", repoID), goerr.V("hash", hash))
		}
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("repoID", repoID), goerr.V("hash", hash))
	}
	return commit, nil
}

func (r *Repository) ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	var limit any
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+commitColumns+` FROM commits
WHERE repository_id = $1
ORDER BY committed_at DESC, seq DESC
LIMIT $2`, repoID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits", goerr.V("repoID", repoID))
	}
	defer safe.Close(rows)

	commits := []*model.Commit{}
	for rows.Next() {
		commit, err := scanCommit(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan commit")
		}
		commits = append(commits, commit)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate commits", goerr.V("repoID", repoID))
	}
	return commits, nil
}

func (r *Repository) GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error) {
	var head model.Head
	err := r.db.QueryRowContext(ctx,
		`SELECT repository_id, commit_hash, seq, updated_at FROM heads WHERE repository_id = $1`, repoID,
	).Scan(&head.RepositoryID, &head.CommitHash, &head.Seq, &head.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get head", goerr.V("repoID", repoID))
	}
	head.UpdatedAt = head.UpdatedAt.UTC()
	return &head, nil
}
