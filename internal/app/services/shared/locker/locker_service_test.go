package locker

import (
	"context"
	"testing"
	"time"

	redisrepo "clinicroom-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T) (*miniredis.Miniredis, *lockService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	svc := NewLockService(redisrepo.NewRedisRepository(client), zap.NewNop()).(*lockService)
	return mr, svc
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Second Lock Rejected", func(t *testing.T) {
		_, svc := newTestLocker(t)
		ok, token, err := svc.TryLock(ctx, "lock:booking:c1:2024-06-11", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotEmpty(t, token)

		ok, _, err = svc.TryLock(ctx, "lock:booking:c1:2024-06-11", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unlock Frees Key", func(t *testing.T) {
		mr, svc := newTestLocker(t)
		_, token, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)
		require.NoError(t, svc.Unlock(ctx, "k", token))
		assert.False(t, mr.Exists("k"))
	})

	t.Run("Unlock With Foreign Token", func(t *testing.T) {
		mr, svc := newTestLocker(t)
		_, _, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Error(t, svc.Unlock(ctx, "k", "someone-else"))
		assert.True(t, mr.Exists("k"))
	})

	t.Run("Unlock Expired Lock Is Noop", func(t *testing.T) {
		mr, svc := newTestLocker(t)
		_, token, err := svc.TryLock(ctx, "k", time.Second)
		require.NoError(t, err)
		mr.FastForward(2 * time.Second)
		assert.NoError(t, svc.Unlock(ctx, "k", token))
	})

	t.Run("Refresh Extends TTL", func(t *testing.T) {
		mr, svc := newTestLocker(t)
		_, token, err := svc.TryLock(ctx, "k", time.Second)
		require.NoError(t, err)
		require.NoError(t, svc.Refresh(ctx, "k", token, time.Minute))
		assert.Equal(t, time.Minute, mr.TTL("k"))

		assert.Error(t, svc.Refresh(ctx, "k", "other", time.Minute))
	})
}
