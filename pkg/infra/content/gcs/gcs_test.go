package gcs_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/infra/content/gcs"
	"github.com/m-mizutani/repohost/pkg/infra/content/testhelper"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"github.com/m-mizutani/repohost/pkg/utils/testutil"
)

func TestGCSContentStore(t *testing.T) {
	bucket := testutil.GetEnvOrSkip(t, "TEST_GCS_BUCKET")

	ctx := context.Background()
	store, err := gcs.New(ctx, bucket, []gcs.Option{
		gcs.WithPrefix("test/" + uuid.NewString()),
	})
	gt.NoError(t, err)
	t.Cleanup(func() { safe.Close(store) })

	testhelper.TestAll(t, store)
}
