package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// SyncUser upserts the user carried by an identity event. Replaying the same event leaves the
// same record. The display name and creation time are owned by this service and kept by the directory.
func (x *UseCase) SyncUser(ctx context.Context, event *model.IdentityEvent) (*model.User, error) {
	if event == nil || !event.IsUserSync() {
		return nil, goerr.Wrap(types.ErrValidationFailed, "event does not carry a user")
	}

	user, err := event.Data.ToUser()
	if err != nil {
		return nil, err
	}

	now := model.NormalizeTimestamp(logging.CtxTime(ctx))
	user.DisplayName = ""
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := x.clients.Directory().UpsertUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert user", goerr.V("userID", user.ID))
	}

	stored, err := x.clients.Directory().GetUser(ctx, user.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", user.ID))
	}

	logging.From(ctx).Info("user synchronized", "type", event.Type, "userID", stored.ID, "username", stored.Username)
	return stored, nil
}

// UpdateDisplayName sets the caller's display name. If the identity event has not arrived yet,
// a placeholder user is created and completed by the event later.
func (x *UseCase) UpdateDisplayName(ctx context.Context, input *model.UpdateDisplayNameInput) (*model.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := model.NormalizeTimestamp(logging.CtxTime(ctx))
	displayName := strings.TrimSpace(input.DisplayName)
	dir := x.clients.Directory()

	user, err := dir.UpdateDisplayName(ctx, input.Caller.ID, displayName, now)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to update display name", goerr.V("userID", input.Caller.ID))
	}

	username := input.Caller.Username
	if username == "" {
		username = model.FallbackUsername(input.Caller.ID)
	}
	placeholder := &model.User{
		ID:        input.Caller.ID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := dir.UpsertUser(ctx, placeholder); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("userID", placeholder.ID))
	}

	user, err = dir.UpdateDisplayName(ctx, input.Caller.ID, displayName, now)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update display name", goerr.V("userID", input.Caller.ID))
	}
	return user, nil
}
