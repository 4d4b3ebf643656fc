package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/utils/errutil"
)

// exportCommit sends the commit event to BigQuery when configured. The commit is already
// recorded, so failures are reported and not returned.
func (x *UseCase) exportCommit(ctx context.Context, owner *model.User, repo *model.Repository, commit *model.Commit, changed int) {
	bq := x.clients.BigQuery()
	if bq == nil {
		return
	}

	event := &model.CommitEvent{
		CommitHash:   commit.Hash,
		ParentHash:   commit.Parent,
		TreeHash:     commit.TreeHash,
		RepositoryID: repo.ID,
		Owner:        owner.Username,
		Repository:   repo.Name,
		AuthorID:     commit.AuthorID,
		AuthorName:   commit.AuthorName,
		Message:      commit.Message,
		ChangedFiles: changed,
		Timestamp:    commit.Timestamp,
	}

	if err := insertCommitEvent(ctx, bq, event); err != nil {
		errutil.HandleError(ctx, "failed to export commit event", err)
	}
}

func insertCommitEvent(ctx context.Context, bq interfaces.BigQuery, event *model.CommitEvent) error {
	schema, err := createOrUpdateBigQueryTable(ctx, bq, event)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, event); err != nil {
		return goerr.Wrap(err, "failed to insert commit event to BigQuery", goerr.V("commit", event.CommitHash))
	}
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, event *model.CommitEvent) (bigquery.Schema, error) {
	schema, err := bqs.Infer(event)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer commit event schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Field: "timestamp",
				Type:  bigquery.DayPartitioningType,
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
