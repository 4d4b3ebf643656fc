package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.usernames[user.Username]; ok && holder != user.ID {
		return goerr.Wrap(types.ErrConflict, "username is already taken",
			goerr.V("username", user.Username),
			goerr.V("userID", user.ID),
		)
	}

	stored := copyUser(user)
	if prev, ok := r.users[user.ID]; ok {
		if prev.Username != user.Username {
			delete(r.usernames, prev.Username)
		}
		stored.DisplayName = prev.DisplayName
		stored.CreatedAt = prev.CreatedAt
	}

	r.users[user.ID] = stored
	r.usernames[user.Username] = user.ID
	return nil
}

func (r *Repository) UpdateDisplayName(ctx context.Context, id types.UserID, displayName string, updatedAt time.Time) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
	}
	user.DisplayName = displayName
	user.UpdatedAt = updatedAt
	return copyUser(user), nil
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
	}
	return copyUser(user), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username types.Username) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("username", username))
	}
	return copyUser(r.users[id]), nil
}
