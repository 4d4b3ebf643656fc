package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra/content"
)

// Store is an in-memory content store for tests and local development
type Store struct {
	mu    sync.RWMutex
	blobs map[types.ContentHash][]byte
}

var _ interfaces.ContentStore = (*Store)(nil)

func New() *Store {
	return &Store{
		blobs: make(map[types.ContentHash][]byte),
	}
}

func (x *Store) Put(ctx context.Context, data []byte) (types.ContentHash, error) {
	hash := types.HashContent(data)

	x.mu.Lock()
	defer x.mu.Unlock()

	if existing, ok := x.blobs[hash]; ok {
		if err := content.Compare(hash, existing, data); err != nil {
			return "", err
		}
		return hash, nil
	}

	x.blobs[hash] = append([]byte{}, data...)
	return hash, nil
}

func (x *Store) Get(ctx context.Context, hash types.ContentHash) ([]byte, error) {
	x.mu.RLock()
	data, ok := x.blobs[hash]
	x.mu.RUnlock()

	if !ok {
		return nil, content.NotFound(hash)
	}
	if err := content.Verify(hash, data); err != nil {
		return nil, err
	}
	return append([]byte{}, data...), nil
}

func (x *Store) Has(ctx context.Context, hash types.ContentHash) (bool, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.blobs[hash]
	return ok, nil
}

// Count returns the number of stored blobs
func (x *Store) Count(ctx context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.blobs), nil
}
