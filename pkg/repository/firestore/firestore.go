package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

const (
	collectionUsers           = "users"
	collectionUsernames       = "usernames"
	collectionRepositories    = "repositories"
	collectionRepositoryNames = "repository_names"
	collectionCommits         = "commits"
	collectionHeads           = "heads"
)

// Repository is a Firestore backed Directory and CommitRepository
type Repository struct {
	client *firestore.Client
}

var (
	_ interfaces.Directory        = (*Repository)(nil)
	_ interfaces.CommitRepository = (*Repository)(nil)
)

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID, databaseID string) (*Repository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Repository{
		client: client,
	}, nil
}

func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Firestore client")
	}
	return nil
}

// ToFirestoreID converts owner ID and repository name to a Firestore-safe document ID
// Uses colon (:) as separator since neither user IDs nor repository names contain colons
func ToFirestoreID(ownerID types.UserID, name string) (string, error) {
	if ownerID == "" || name == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "owner or name is empty",
			goerr.V("ownerID", ownerID),
			goerr.V("name", name),
		)
	}

	if strings.ContainsAny(string(ownerID), ":/") || strings.ContainsAny(name, ":/") {
		return "", goerr.Wrap(types.ErrValidationFailed, "owner or name contains invalid character",
			goerr.V("ownerID", ownerID),
			goerr.V("name", name),
		)
	}

	return string(ownerID) + ":" + name, nil
}

// docID rejects values that cannot be used as a single document ID
func docID(kind, value string) (string, error) {
	if value == "" || strings.Contains(value, "/") || value == "." || value == ".." {
		return "", goerr.Wrap(types.ErrValidationFailed, "invalid document ID",
			goerr.V("kind", kind),
			goerr.V("value", value),
		)
	}
	return value, nil
}
