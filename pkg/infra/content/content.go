// Package content holds helpers shared by content store backends.
package content

import (
	"bytes"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// Verify checks data read back from storage still matches its address
func Verify(hash types.ContentHash, data []byte) error {
	if actual := types.HashContent(data); actual != hash {
		return goerr.Wrap(types.ErrIntegrityViolation, "stored content does not match its hash",
			goerr.V("hash", hash),
			goerr.V("actual", actual),
		)
	}
	return nil
}

// Compare checks bytes already stored under hash are identical to the bytes being put
func Compare(hash types.ContentHash, existing, data []byte) error {
	if !bytes.Equal(existing, data) {
		return goerr.Wrap(types.ErrIntegrityViolation, "different content already stored under the same hash",
			goerr.V("hash", hash),
			goerr.V("existing_size", len(existing)),
			goerr.V("size", len(data)),
		)
	}
	return nil
}

// NotFound builds the error returned for an unknown hash
func NotFound(hash types.ContentHash) error {
	return goerr.Wrap(types.ErrNotFound, "content not found", goerr.V("hash", hash))
}
