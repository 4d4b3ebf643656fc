package bolt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra/content"
	bolt "go.etcd.io/bbolt"
)

var bucketBlobs = []byte("blobs")

// Store keeps blobs in a single BoltDB file
type Store struct {
	db *bolt.DB
}

var _ interfaces.ContentStore = (*Store)(nil)

// New opens (or creates) a BoltDB file at path
func New(path string) (*Store, error) {
	if path == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bolt path is required")
	}

	cleaned := filepath.Clean(path)
	if dir := filepath.Dir(cleaned); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, goerr.Wrap(err, "failed to create directory for bolt file", goerr.V("path", cleaned))
		}
	}

	db, err := bolt.Open(cleaned, 0o600, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open bolt file", goerr.V("path", cleaned))
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create blob bucket")
	}

	return &Store{db: db}, nil
}

func (x *Store) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close bolt file")
	}
	return nil
}

func lookup(b *bolt.Bucket, key []byte) ([]byte, bool) {
	k, v := b.Cursor().Seek(key)
	if k == nil || !bytes.Equal(k, key) {
		return nil, false
	}
	return v, true
}

func (x *Store) Put(ctx context.Context, data []byte) (types.ContentHash, error) {
	if err := ctx.Err(); err != nil {
		return "", goerr.Wrap(err, "context is done before put")
	}

	hash := types.HashContent(data)
	key := []byte(hash)

	err := x.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBlobs)
		if existing, ok := lookup(b, key); ok {
			return content.Compare(hash, existing, data)
		}
		return b.Put(key, data)
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to put blob", goerr.V("hash", hash))
	}

	return hash, nil
}

func (x *Store) Get(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context is done before get")
	}

	var data []byte
	err := x.db.View(func(tx *bolt.Tx) error {
		v, ok := lookup(tx.Bucket(bucketBlobs), []byte(hash))
		if !ok {
			return content.NotFound(hash)
		}
		data = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := content.Verify(hash, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (x *Store) Has(ctx context.Context, hash types.ContentHash) (bool, error) {
	var found bool
	err := x.db.View(func(tx *bolt.Tx) error {
		_, found = lookup(tx.Bucket(bucketBlobs), []byte(hash))
		return nil
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to look up blob", goerr.V("hash", hash))
	}
	return found, nil
}

// Count returns the number of stored blobs
func (x *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := x.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketBlobs).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count blobs")
	}
	return n, nil
}
