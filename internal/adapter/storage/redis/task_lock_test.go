package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLock_AcquireOnce(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	a := NewTaskLock(client)
	b := NewTaskLock(client)
	ctx := context.Background()

	ok, err := a.Acquire(ctx, "queue", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Acquire(ctx, "queue", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second instance must not get the lease")

	ok, err = b.Acquire(ctx, "retry", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "different task names are independent")
}

func TestTaskLock_ReleaseOnlyOwn(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	a := NewTaskLock(client)
	b := NewTaskLock(client)
	ctx := context.Background()

	ok, err := a.Acquire(ctx, "purge", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, b.Release(ctx, "purge"))
	assert.True(t, s.Exists("whg:lock:purge"), "foreign release must not drop the lease")

	require.NoError(t, a.Release(ctx, "purge"))
	assert.False(t, s.Exists("whg:lock:purge"))

	ok, err = b.Acquire(ctx, "purge", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTaskLock_Expires(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	a := NewTaskLock(client)
	b := NewTaskLock(client)
	ctx := context.Background()

	ok, err := a.Acquire(ctx, "queue", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Second)

	ok, err = b.Acquire(ctx, "queue", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired lease should be acquirable")
}
