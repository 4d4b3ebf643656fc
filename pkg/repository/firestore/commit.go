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

// maxAppendAttempts bounds transaction retries on contention. A retried attempt re-reads the
// head, so losers of a race end in ErrConflict rather than exhausting the attempts.
const maxAppendAttempts = 16

func (r *Repository) commitsCollection(repoID types.RepositoryID) *firestore.CollectionRef {
	return r.client.Collection(collectionRepositories).Doc(repoID.String()).Collection(collectionCommits)
}

func (r *Repository) headRef(repoID types.RepositoryID) *firestore.DocumentRef {
	return r.client.Collection(collectionHeads).Doc(repoID.String())
}

// AppendCommit reads the head document inside the transaction; Firestore aborts the
// transaction if another append changed it before commit.
func (r *Repository) AppendCommit(ctx context.Context, commit *model.Commit) error {
	if err := commit.Verify(); err != nil {
		return err
	}
	if _, err := docID("repository", commit.RepositoryID.String()); err != nil {
		return err
	}

	commits := r.commitsCollection(commit.RepositoryID)
	headRef := r.headRef(commit.RepositoryID)

	var seq int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Get(commits.Doc(commit.Hash.String()))
		if err == nil {
			var prev model.Commit
			if err := existing.DataTo(&prev); err != nil {
				return goerr.Wrap(err, "failed to decode commit")
			}
			seq = prev.Seq
			return nil
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get commit")
		}

		if commit.Parent != "" {
			if _, err := tx.Get(commits.Doc(commit.Parent.String())); err != nil {
				if status.Code(err) == codes.NotFound {
					return goerr.Wrap(types.ErrValidationFailed, "parent commit does not exist in the repository",
						goerr.V("repoID", commit.RepositoryID),
						goerr.V("parent", commit.Parent),
					)
				}
				return goerr.Wrap(err, "failed to get parent commit")
			}
		}

		var head *model.Head
		headSnap, err := tx.Get(headRef)
		if err == nil {
			head = &model.Head{}
			if err := headSnap.DataTo(head); err != nil {
				return goerr.Wrap(err, "failed to decode head")
			}
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get head")
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

		if err := tx.Create(commits.Doc(commit.Hash.String()), &stored); err != nil {
			return goerr.Wrap(err, "failed to create commit")
		}
		if err := tx.Set(headRef, &model.Head{
			RepositoryID: commit.RepositoryID,
			CommitHash:   commit.Hash,
			Seq:          seq,
			UpdatedAt:    commit.Timestamp,
		}); err != nil {
			return goerr.Wrap(err, "failed to set head")
		}
		return nil
	}, firestore.MaxAttempts(maxAppendAttempts))

	if err != nil {
		return goerr.Wrap(err, "failed to append commit",
			goerr.V("repoID", commit.RepositoryID),
			goerr.V("hash", commit.Hash),
		)
	}

	commit.Seq = seq
	return nil
}

func (r *Repository) GetCommit(ctx context.Context, repoID types.RepositoryID, hash types.CommitHash) (*model.Commit, error) {
	notFound := func() error {
		return goerr.Wrap(types.ErrNotFound, "commit not found",
			goerr.V("repoID", repoID),
			goerr.V("hash", hash),
		)
	}
	if hash.Validate() != nil {
		return nil, notFound()
	}
	if _, err := docID("repository", repoID.String()); err != nil {
		return nil, notFound()
	}

	snap, err := r.commitsCollection(repoID).Doc(hash.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, notFound()
		}
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("repoID", repoID), goerr.V("hash", hash))
	}

	var commit model.Commit
	if err := snap.DataTo(&commit); err != nil {
		return nil, goerr.Wrap(err, "failed to decode commit", goerr.V("hash", hash))
	}
	commit.Timestamp = commit.Timestamp.UTC()
	return &commit, nil
}

// ListCommits reads the whole history and orders it in memory so no composite index is needed
func (r *Repository) ListCommits(ctx context.Context, repoID types.RepositoryID, opts model.ListCommitsOptions) ([]*model.Commit, error) {
	commits := []*model.Commit{}
	if _, err := docID("repository", repoID.String()); err != nil {
		return commits, nil
	}

	iter := r.commitsCollection(repoID).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate commits", goerr.V("repoID", repoID))
		}

		var commit model.Commit
		if err := doc.DataTo(&commit); err != nil {
			return nil, goerr.Wrap(err, "failed to decode commit", goerr.V("docID", doc.Ref.ID))
		}
		commit.Timestamp = commit.Timestamp.UTC()
		commits = append(commits, &commit)
	}

	model.SortCommits(commits)
	if opts.Limit > 0 && len(commits) > opts.Limit {
		commits = commits[:opts.Limit]
	}
	return commits, nil
}

func (r *Repository) GetHead(ctx context.Context, repoID types.RepositoryID) (*model.Head, error) {
	if _, err := docID("repository", repoID.String()); err != nil {
		return nil, nil
	}

	snap, err := r.headRef(repoID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get head", goerr.V("repoID", repoID))
	}

	var head model.Head
	if err := snap.DataTo(&head); err != nil {
		return nil, goerr.Wrap(err, "failed to decode head", goerr.V("repoID", repoID))
	}
	head.UpdatedAt = head.UpdatedAt.UTC()
	return &head, nil
}
