package lock

import (
	"context"
	"testing"
	"time"

	"nudge/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (service.RunLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client), mr
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	locker, mr := newRedisLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "nudge:reminders:run", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:nudge:reminders:run"))
	assert.Equal(t, time.Minute, mr.TTL("lock:nudge:reminders:run"))

	_, err = locker.Acquire(ctx, "nudge:reminders:run", time.Minute)
	assert.ErrorIs(t, err, service.ErrLockHeld)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("lock:nudge:reminders:run"))

	release, err = locker.Acquire(ctx, "nudge:reminders:run", time.Minute)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisLocker_ExpiredLockCanBeTaken(t *testing.T) {
	locker, mr := newRedisLocker(t)
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, "run", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = locker.Acquire(ctx, "run", time.Minute)
	require.NoError(t, err)

	// the stale holder must not release the new holder's lock
	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("lock:run"))
}

func TestRedisLocker_Unavailable(t *testing.T) {
	locker, mr := newRedisLocker(t)
	mr.Close()

	_, err := locker.Acquire(context.Background(), "run", time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrLockHeld)
}

func TestLocalLocker(t *testing.T) {
	now := time.Date(2024, 1, 6, 18, 0, 0, 0, time.UTC)
	locker := &localLocker{
		held:  make(map[string]localHold),
		nowFn: func() time.Time { return now },
	}
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "run", time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "run", time.Minute)
	assert.ErrorIs(t, err, service.ErrLockHeld)

	_, err = locker.Acquire(ctx, "other", time.Minute)
	assert.NoError(t, err)

	require.NoError(t, release(ctx))
	secondRelease, err := locker.Acquire(ctx, "run", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = locker.Acquire(ctx, "run", time.Minute)
	require.NoError(t, err, "expired hold is taken over")

	require.NoError(t, secondRelease(ctx))
	_, err = locker.Acquire(ctx, "run", time.Minute)
	assert.ErrorIs(t, err, service.ErrLockHeld, "stale release leaves the new hold in place")
}
