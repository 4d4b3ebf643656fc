package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery ContentStore

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/repohost/pkg/domain/types"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// ContentStore keeps blobs addressed by the SHA-256 of their bytes.
// Put of bytes that differ from an existing blob with the same hash, and Get of
// stored bytes that no longer match their hash, fail with types.ErrIntegrityViolation.
type ContentStore interface {
	Put(ctx context.Context, data []byte) (types.ContentHash, error)
	Get(ctx context.Context, hash types.ContentHash) ([]byte, error)
	Has(ctx context.Context, hash types.ContentHash) (bool, error)
}
