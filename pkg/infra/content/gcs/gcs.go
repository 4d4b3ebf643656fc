package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra/content"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Store keeps blobs as objects in a Cloud Storage bucket
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ContentStore = (*Store)(nil)

type Option func(*Store)

// WithPrefix sets the object name prefix, e.g. "blobs"
func WithPrefix(prefix string) Option {
	return func(x *Store) {
		x.prefix = prefix
	}
}

func New(ctx context.Context, bucket string, opts []Option, clientOptions ...option.ClientOption) (*Store, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bucket name is required")
	}

	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", bucket))
	}

	store := &Store{
		client: client,
		bucket: bucket,
		prefix: "blobs",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

func (x *Store) Close() error {
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cloud Storage client")
	}
	return nil
}

// objectName fans blobs out by the first two hex chars
func (x *Store) objectName(hash types.ContentHash) string {
	h := string(hash)
	return path.Join(x.prefix, h[:2], h)
}

func (x *Store) object(hash types.ContentHash) *storage.ObjectHandle {
	return x.client.Bucket(x.bucket).Object(x.objectName(hash))
}

func isPreconditionFailed(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusPreconditionFailed
}

func (x *Store) Put(ctx context.Context, data []byte) (types.ContentHash, error) {
	hash := types.HashContent(data)

	exists, err := x.Has(ctx, hash)
	if err != nil {
		return "", err
	}
	if !exists {
		w := x.object(hash).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
		w.ContentType = "application/octet-stream"
		w.Metadata = map[string]string{"sha256": hash.String()}

		if _, err := w.Write(data); err != nil {
			_ = w.Close()
			return "", goerr.Wrap(err, "failed to write blob", goerr.V("hash", hash))
		}
		err := w.Close()
		if err == nil {
			return hash, nil
		}
		if !isPreconditionFailed(err) {
			return "", goerr.Wrap(err, "failed to close blob writer", goerr.V("hash", hash))
		}
		// Another writer created the object first; fall through and compare.
	}

	existing, err := x.read(ctx, hash)
	if err != nil {
		return "", err
	}
	if err := content.Compare(hash, existing, data); err != nil {
		return "", err
	}
	return hash, nil
}

func (x *Store) read(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	r, err := x.object(hash).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, content.NotFound(hash)
		}
		return nil, goerr.Wrap(err, "failed to open blob", goerr.V("hash", hash))
	}
	defer safe.Close(r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read blob", goerr.V("hash", hash))
	}
	return data, nil
}

func (x *Store) Get(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	if err := hash.Validate(); err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "content not found", goerr.V("hash", hash))
	}

	data, err := x.read(ctx, hash)
	if err != nil {
		return nil, err
	}
	if err := content.Verify(hash, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (x *Store) Has(ctx context.Context, hash types.ContentHash) (bool, error) {
	if err := hash.Validate(); err != nil {
		return false, nil
	}

	if _, err := x.object(hash).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get blob attributes", goerr.V("hash", hash))
	}
	return true, nil
}
