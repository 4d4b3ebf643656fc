package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type usernameDoc struct {
	UserID types.UserID `firestore:"user_id"`
}

// UpsertUser keeps a usernames/{username} index document in the same transaction to enforce uniqueness
func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	userID, err := docID("user", string(user.ID))
	if err != nil {
		return err
	}
	username, err := docID("username", string(user.Username))
	if err != nil {
		return err
	}

	userRef := r.client.Collection(collectionUsers).Doc(userID)
	nameRef := r.client.Collection(collectionUsernames).Doc(username)

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		nameSnap, err := tx.Get(nameRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get username index")
		}
		if err == nil {
			var idx usernameDoc
			if err := nameSnap.DataTo(&idx); err != nil {
				return goerr.Wrap(err, "failed to decode username index")
			}
			if idx.UserID != user.ID {
				return goerr.Wrap(types.ErrConflict, "username is already taken",
					goerr.V("username", user.Username),
					goerr.V("userID", user.ID),
				)
			}
		}

		stored := *user
		userSnap, err := tx.Get(userRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get user")
		}
		if err == nil {
			var prev model.User
			if err := userSnap.DataTo(&prev); err != nil {
				return goerr.Wrap(err, "failed to decode user")
			}
			if prev.Username != user.Username {
				if err := tx.Delete(r.client.Collection(collectionUsernames).Doc(string(prev.Username))); err != nil {
					return goerr.Wrap(err, "failed to release old username")
				}
			}
			stored.DisplayName = prev.DisplayName
			stored.CreatedAt = prev.CreatedAt
		}

		if err := tx.Set(nameRef, usernameDoc{UserID: user.ID}); err != nil {
			return goerr.Wrap(err, "failed to set username index")
		}
		if err := tx.Set(userRef, &stored); err != nil {
			return goerr.Wrap(err, "failed to set user")
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to upsert user", goerr.V("userID", user.ID))
	}
	return nil
}

func (r *Repository) UpdateDisplayName(ctx context.Context, id types.UserID, displayName string, updatedAt time.Time) (*model.User, error) {
	userID, err := docID("user", string(id))
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
	}
	userRef := r.client.Collection(collectionUsers).Doc(userID)

	var user model.User
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
			}
			return goerr.Wrap(err, "failed to get user")
		}
		if err := snap.DataTo(&user); err != nil {
			return goerr.Wrap(err, "failed to decode user")
		}

		user.DisplayName = displayName
		user.UpdatedAt = updatedAt
		return tx.Update(userRef, []firestore.Update{
			{Path: "display_name", Value: displayName},
			{Path: "updated_at", Value: updatedAt},
		})
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update display name", goerr.V("userID", id))
	}
	return &user, nil
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	userID, err := docID("user", string(id))
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
	}

	snap, err := r.client.Collection(collectionUsers).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("userID", id))
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username types.Username) (*model.User, error) {
	name, err := docID("username", string(username))
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("username", username))
	}

	snap, err := r.client.Collection(collectionUsernames).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "user not found", goerr.V("username", username))
		}
		return nil, goerr.Wrap(err, "failed to get username index", goerr.V("username", username))
	}

	var idx usernameDoc
	if err := snap.DataTo(&idx); err != nil {
		return nil, goerr.Wrap(err, "failed to decode username index")
	}
	return r.GetUser(ctx, idx.UserID)
}
