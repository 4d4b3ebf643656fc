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

const repositoryColumns = `id, owner_id, name, description, visibility, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepository(row rowScanner) (*model.Repository, error) {
	var repo model.Repository
	if err := row.Scan(
		&repo.ID, &repo.OwnerID, &repo.Name, &repo.Description,
		&repo.Visibility, &repo.CreatedAt, &repo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	repo.CreatedAt = repo.CreatedAt.UTC()
	repo.UpdatedAt = repo.UpdatedAt.UTC()
	return &repo, nil
}

func (r *Repository) CreateRepository(ctx context.Context, repo *model.Repository) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO repositories (`+repositoryColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		repo.ID, repo.OwnerID, repo.Name, repo.Description,
		repo.Visibility, repo.CreatedAt, repo.UpdatedAt,
	)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return goerr.Wrap(types.ErrConflict, "repository already exists",
				goerr.V("ownerID", repo.OwnerID),
				goerr.V("name", repo.Name),
			)
		case codeForeignKeyViolation:
			return goerr.Wrap(types.ErrNotFound, "owner does not exist", goerr.V("ownerID", repo.OwnerID))
		}
		return goerr.Wrap(err, "failed to create repository", goerr.V("repoID", repo.ID))
	}
	return nil
}

func (r *Repository) GetRepository(ctx context.Context, ownerID types.UserID, name string) (*model.Repository, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+repositoryColumns+` FROM repositories WHERE owner_id = $1 AND name = $2`, ownerID, name)
	repo, err := scanRepository(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "repository not found",
				goerr.V("ownerID", ownerID),
				goerr.V("name", name),
			)
		}
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("ownerID", ownerID), goerr.V("name", name))
	}
	return repo, nil
}

func (r *Repository) GetRepositoryByID(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+repositoryColumns+` FROM repositories WHERE id = $1`, id)
	repo, err := scanRepository(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "repository not found", goerr.V("repoID", id))
		}
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("repoID", id))
	}
	return repo, nil
}

func (r *Repository) ListRepositories(ctx context.Context, ownerID types.UserID) ([]*model.Repository, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+repositoryColumns+` FROM repositories WHERE owner_id = $1 ORDER BY created_at DESC, name ASC`, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories", goerr.V("ownerID", ownerID))
	}
	defer safe.Close(rows)

	repos := []*model.Repository{}
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan repository")
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate repositories", goerr.V("ownerID", ownerID))
	}
	return repos, nil
}
