package testhelper

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// counter is implemented by stores that can report the number of stored blobs
type counter interface {
	Count(ctx context.Context) (int, error)
}

// TestAll runs all test cases for ContentStore
func TestAll(t *testing.T, store interfaces.ContentStore) {
	t.Run("PutGet", func(t *testing.T) {
		TestPutGet(t, store)
	})
	t.Run("Idempotent", func(t *testing.T) {
		TestIdempotent(t, store)
	})
	t.Run("DistinctHashes", func(t *testing.T) {
		TestDistinctHashes(t, store)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, store)
	})
	t.Run("ConcurrentSameContent", func(t *testing.T) {
		TestConcurrentSameContent(t, store)
	})
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	gt.NoError(t, err)
	return buf
}

// TestPutGet stores a blob and reads it back
func TestPutGet(t *testing.T, store interfaces.ContentStore) {
	ctx := context.Background()
	data := randomBytes(t, 128)

	hash, err := store.Put(ctx, data)
	gt.NoError(t, err)
	gt.V(t, hash).Equal(types.HashContent(data))

	got, err := store.Get(ctx, hash)
	gt.NoError(t, err)
	gt.V(t, got).Equal(data)

	ok, err := store.Has(ctx, hash)
	gt.NoError(t, err)
	gt.True(t, ok)

	empty, err := store.Put(ctx, []byte{})
	gt.NoError(t, err)
	got, err = store.Get(ctx, empty)
	gt.NoError(t, err)
	gt.V(t, len(got)).Equal(0)
}

// TestIdempotent puts the same bytes twice
func TestIdempotent(t *testing.T, store interfaces.ContentStore) {
	ctx := context.Background()
	data := randomBytes(t, 64)

	h1, err := store.Put(ctx, data)
	gt.NoError(t, err)

	var before int
	c, countable := store.(counter)
	if countable {
		before, err = c.Count(ctx)
		gt.NoError(t, err)
	}

	h2, err := store.Put(ctx, append([]byte{}, data...))
	gt.NoError(t, err)
	gt.V(t, h2).Equal(h1)

	if countable {
		after, err := c.Count(ctx)
		gt.NoError(t, err)
		gt.V(t, after).Equal(before)
	}
}

// TestDistinctHashes puts many distinct byte sequences and expects no shared hash
func TestDistinctHashes(t *testing.T, store interfaces.ContentStore) {
	ctx := context.Background()
	seen := make(map[types.ContentHash]string)
	prefix := string(randomBytes(t, 8))

	for i := 0; i < 100; i++ {
		data := fmt.Sprintf("%s-%d", prefix, i)
		hash, err := store.Put(ctx, []byte(data))
		gt.NoError(t, err)

		if prev, ok := seen[hash]; ok {
			t.Fatalf("hash collision between %q and %q", prev, data)
		}
		seen[hash] = data
	}
}

// TestNotFound reads an unknown hash
func TestNotFound(t *testing.T, store interfaces.ContentStore) {
	ctx := context.Background()
	hash := types.HashContent(randomBytes(t, 32))

	_, err := store.Get(ctx, hash)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	ok, err := store.Has(ctx, hash)
	gt.NoError(t, err)
	gt.False(t, ok)
}

// TestConcurrentSameContent writes identical bytes from many goroutines
func TestConcurrentSameContent(t *testing.T, store interfaces.ContentStore) {
	ctx := context.Background()
	data := randomBytes(t, 256)
	expected := types.HashContent(data)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := store.Put(ctx, data)
			if err != nil {
				errs <- err
				return
			}
			if hash != expected {
				errs <- fmt.Errorf("unexpected hash %s", hash)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	got, err := store.Get(ctx, expected)
	gt.NoError(t, err)
	gt.V(t, got).Equal(data)
}
