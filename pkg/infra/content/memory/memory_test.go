package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra/content/memory"
	"github.com/m-mizutani/repohost/pkg/infra/content/testhelper"
)

func TestMemoryContentStore(t *testing.T) {
	testhelper.TestAll(t, memory.New())
}

func TestMemoryContentStoreCorruption(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	hash, err := store.Put(ctx, []byte("original"))
	gt.NoError(t, err)

	store.OverwriteForTest(hash, []byte("tampered"))

	_, err = store.Get(ctx, hash)
	gt.True(t, errors.Is(err, types.ErrIntegrityViolation))

	_, err = store.Put(ctx, []byte("original"))
	gt.True(t, errors.Is(err, types.ErrIntegrityViolation))
}
