package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

const userColumns = `id, username, email, first_name, last_name, display_name, avatar_url, created_at, updated_at`

func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    username     = EXCLUDED.username,
    email        = EXCLUDED.email,
    first_name   = EXCLUDED.first_name,
    last_name    = EXCLUDED.last_name,
    avatar_url   = EXCLUDED.avatar_url,
    updated_at   = EXCLUDED.updated_at`,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.DisplayName, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return goerr.Wrap(types.ErrConflict, "username is already taken",
				goerr.V("username", user.Username),
				goerr.V("userID", user.ID),
			)
		}
		return goerr.Wrap(err, "failed to upsert user", goerr.V("userID", user.ID))
	}
	return nil
}

func (r *Repository) UpdateDisplayName(ctx context.Context, id types.UserID, displayName string, updatedAt time.Time) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `
UPDATE users SET display_name = $2, updated_at = $3
WHERE id = $1
RETURNING `+userColumns, id, displayName, updatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to update display name", goerr.V("userID", id))
	}
	return user, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.DisplayName, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}
	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username types.Username) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("username", username))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("username", username))
	}
	return user, nil
}
