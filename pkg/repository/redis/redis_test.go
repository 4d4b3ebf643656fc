package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/repository/memory"
	repohostredis "github.com/m-mizutani/repohost/pkg/repository/redis"
	"github.com/m-mizutani/repohost/pkg/repository/testhelper"
	"github.com/redis/go-redis/v9"
)

func newRedisRepository(t *testing.T) *repohostredis.Repository {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		mini := miniredis.RunT(t)
		addr = mini.Addr()
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	repo := repohostredis.New(client, repohostredis.WithKeyPrefix("repohost-test-"+types.NewRequestID().String()))
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestRedis(t *testing.T) {
	commits := newRedisRepository(t)
	testhelper.TestAllCommits(t, memory.New(), commits)
}

func TestRedisHeadSurvivesReconnect(t *testing.T) {
	mini := miniredis.RunT(t)
	ctx := context.Background()
	dir := memory.New()

	owner := testhelper.NewUser()
	gt.NoError(t, dir.UpsertUser(ctx, owner))
	repo := testhelper.NewRepository(owner.ID)
	gt.NoError(t, dir.CreateRepository(ctx, repo))

	first := repohostredis.New(redis.NewClient(&redis.Options{Addr: mini.Addr()}))
	commit := testhelper.NewCommit(repo, owner, "", "init", time.Now())
	gt.NoError(t, first.AppendCommit(ctx, commit))
	gt.NoError(t, first.Close())

	second, err := repohostredis.Dial(ctx, mini.Addr(), "", 0)
	gt.NoError(t, err)
	defer second.Close()

	head, err := second.GetHead(ctx, repo.ID)
	gt.NoError(t, err)
	gt.V(t, head.CommitHash).Equal(commit.Hash)
	gt.V(t, head.Seq).Equal(int64(1))
}
