package safe_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
)

type recordCloser struct {
	name  string
	order *[]string
	err   error
}

func (x *recordCloser) Close() error {
	*x.order = append(*x.order, x.name)
	return x.err
}

func TestClose(t *testing.T) {
	t.Run("close valid reader", func(t *testing.T) {
		safe.Close(io.NopCloser(bytes.NewReader([]byte("test"))))
	})

	t.Run("close nil", func(t *testing.T) {
		safe.Close(nil)
	})

	t.Run("error is logged, not returned", func(t *testing.T) {
		var order []string
		safe.Close(&recordCloser{name: "a", order: &order, err: io.ErrUnexpectedEOF})
		safe.Close(&recordCloser{name: "b", order: &order, err: io.EOF})
		gt.V(t, order).Equal([]string{"a", "b"})
	})
}

func TestClosers(t *testing.T) {
	var order []string
	var closers safe.Closers
	closers.Add(&recordCloser{name: "content", order: &order})
	closers.Add(&recordCloser{name: "directory", order: &order, err: io.ErrClosedPipe})
	closers.Add(&recordCloser{name: "commits", order: &order})

	closers.Close()
	gt.V(t, order).Equal([]string{"commits", "directory", "content"})
}

func TestRollback(t *testing.T) {
	t.Run("rollback with nil transaction", func(t *testing.T) {
		safe.Rollback(nil)
	})
}
