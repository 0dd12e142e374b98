package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*miniredis.Miniredis, *redisRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, &redisRepository{client: client}
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Set And GetInto", func(t *testing.T) {
		_, repo := newTestRepository(t)
		require.NoError(t, repo.Set(ctx, "k", sample{Name: "a", Count: 2}, time.Minute))

		var got sample
		found, err := repo.GetInto(ctx, "k", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, sample{Name: "a", Count: 2}, got)
	})

	t.Run("Missing Key", func(t *testing.T) {
		_, repo := newTestRepository(t)
		value, err := repo.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, value)

		var got sample
		found, err := repo.GetInto(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Expiry", func(t *testing.T) {
		mr, repo := newTestRepository(t)
		require.NoError(t, repo.Set(ctx, "k", "v", time.Minute))
		mr.FastForward(2 * time.Minute)

		value, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("TrySetNX Only Once", func(t *testing.T) {
		_, repo := newTestRepository(t)
		first, err := repo.TrySetNX(ctx, "lock", "a", time.Minute)
		require.NoError(t, err)
		second, err := repo.TrySetNX(ctx, "lock", "b", time.Minute)
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("Delete", func(t *testing.T) {
		mr, repo := newTestRepository(t)
		require.NoError(t, repo.Set(ctx, "k", "v", 0))
		require.NoError(t, repo.Delete(ctx, "k"))
		assert.False(t, mr.Exists("k"))
	})

	t.Run("Ping Fails When Server Down", func(t *testing.T) {
		mr, repo := newTestRepository(t)
		require.NoError(t, repo.Ping(ctx))
		mr.Close()
		assert.Error(t, repo.Ping(ctx))
	})
}
