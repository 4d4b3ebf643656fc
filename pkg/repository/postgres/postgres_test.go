package postgres_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/repository/postgres"
	"github.com/m-mizutani/repohost/pkg/repository/testhelper"
	"github.com/m-mizutani/repohost/pkg/utils/safe"
	"github.com/m-mizutani/repohost/pkg/utils/testutil"
)

func TestPostgresRepository(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	ctx := context.Background()
	repo, err := postgres.New(ctx, types.PostgresDSN(dsn))
	gt.NoError(t, err)
	t.Cleanup(func() { safe.Close(repo) })

	gt.NoError(t, repo.Migrate())
	// Migrations are idempotent
	gt.NoError(t, repo.Migrate())

	testhelper.TestAll(t, repo, repo)
}
