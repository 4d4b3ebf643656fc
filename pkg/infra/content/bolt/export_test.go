package bolt

import (
	"github.com/m-mizutani/repohost/pkg/domain/types"
	bolt "go.etcd.io/bbolt"
)

// OverwriteForTest replaces stored bytes without updating the address
func (x *Store) OverwriteForTest(hash types.ContentHash, data []byte) error {
	return x.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(hash), data)
	})
}
