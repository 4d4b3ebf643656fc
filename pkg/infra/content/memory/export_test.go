package memory

import "github.com/m-mizutani/repohost/pkg/domain/types"

// OverwriteForTest replaces stored bytes without updating the address
func (x *Store) OverwriteForTest(hash types.ContentHash, data []byte) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.blobs[hash] = data
}
