package safe

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

// Close closes the resource and logs the error if any
func Close(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && !errors.Is(err, io.EOF) {
		logging.Default().Warn("Fail to close resource", slog.Any("error", err))
	}
}

// Closers closes registered resources in reverse order of registration
type Closers []io.Closer

func (x *Closers) Add(closer io.Closer) {
	*x = append(*x, closer)
}

func (x Closers) Close() {
	for i := len(x) - 1; i >= 0; i-- {
		Close(x[i])
	}
}

// Rollback rolls back the transaction unless it is already committed
func Rollback(tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Default().Warn("Fail to rollback transaction", slog.Any("error", err))
	}
}
