package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type repositoryNameDoc struct {
	RepositoryID types.RepositoryID `firestore:"repository_id"`
}

func (r *Repository) CreateRepository(ctx context.Context, repo *model.Repository) error {
	nameID, err := ToFirestoreID(repo.OwnerID, repo.Name)
	if err != nil {
		return err
	}
	repoID, err := docID("repository", repo.ID.String())
	if err != nil {
		return err
	}

	nameRef := r.client.Collection(collectionRepositoryNames).Doc(nameID)
	repoRef := r.client.Collection(collectionRepositories).Doc(repoID)

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(nameRef); err == nil {
			return goerr.Wrap(types.ErrConflict, "repository already exists",
				goerr.V("ownerID", repo.OwnerID),
				goerr.V("name", repo.Name),
			)
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get repository name index")
		}

		if err := tx.Create(nameRef, repositoryNameDoc{RepositoryID: repo.ID}); err != nil {
			return goerr.Wrap(err, "failed to create repository name index")
		}
		if err := tx.Create(repoRef, repo); err != nil {
			return goerr.Wrap(err, "failed to create repository")
		}
		return nil
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(types.ErrConflict, "repository already exists", goerr.V("repoID", repo.ID))
		}
		return goerr.Wrap(err, "failed to create repository",
			goerr.V("ownerID", repo.OwnerID),
			goerr.V("name", repo.Name),
		)
	}
	return nil
}

func (r *Repository) GetRepository(ctx context.Context, ownerID types.UserID, name string) (*model.Repository, error) {
	nameID, err := ToFirestoreID(ownerID, name)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "repository not found",
			goerr.V("ownerID", ownerID),
			goerr.V("name", name),
		)
	}

	snap, err := r.client.Collection(collectionRepositoryNames).Doc(nameID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "repository not found",
				goerr.V("ownerID", ownerID),
				goerr.V("name", name),
			)
		}
		return nil, goerr.Wrap(err, "failed to get repository name index", goerr.V("docID", nameID))
	}

	var idx repositoryNameDoc
	if err := snap.DataTo(&idx); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository name index", goerr.V("docID", nameID))
	}
	return r.GetRepositoryByID(ctx, idx.RepositoryID)
}

func (r *Repository) GetRepositoryByID(ctx context.Context, id types.RepositoryID) (*model.Repository, error) {
	repoID, err := docID("repository", id.String())
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "repository not found", goerr.V("repoID", id))
	}

	snap, err := r.client.Collection(collectionRepositories).Doc(repoID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "repository not found", goerr.V("repoID", id))
		}
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("repoID", id))
	}

	var repo model.Repository
	if err := snap.DataTo(&repo); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository", goerr.V("repoID", id))
	}
	return &repo, nil
}

func (r *Repository) ListRepositories(ctx context.Context, ownerID types.UserID) ([]*model.Repository, error) {
	iter := r.client.Collection(collectionRepositories).Where("owner_id", "==", ownerID.String()).Documents(ctx)
	defer iter.Stop()

	repos := []*model.Repository{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate repositories", goerr.V("ownerID", ownerID))
		}

		var repo model.Repository
		if err := doc.DataTo(&repo); err != nil {
			return nil, goerr.Wrap(err, "failed to decode repository", goerr.V("docID", doc.Ref.ID))
		}
		repos = append(repos, &repo)
	}

	model.SortRepositories(repos)
	return repos, nil
}
