package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyStoreLockAndRecall(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryIdempotencyStore(time.Minute)

	ok, err := s.TryLock(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TryLock(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// A different key or scope is an independent lock.
	ok, err = s.TryLock(ctx, "orders", "key-2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.TryLock(ctx, "refunds", "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, found, err := s.Recall(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Remember(ctx, "orders", "key-1", "O-1"))
	v, found, err := s.Recall(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "O-1", v)
}

func TestMemoryIdempotencyStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryIdempotencyStore(time.Minute)

	now := time.Unix(1_700_000_000, 0)
	s.nowFunc = func() time.Time { return now }

	ok, err := s.TryLock(ctx, "orders", "key-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Remember(ctx, "orders", "key-1", "O-1"))

	// Still inside the TTL.
	now = now.Add(59 * time.Second)
	ok, err = s.TryLock(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.False(t, ok)
	_, found, err := s.Recall(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.True(t, found)

	// Past the TTL: the value is gone and the lock can be retaken.
	now = now.Add(2 * time.Minute)
	_, found, err = s.Recall(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.False(t, found)
	ok, err = s.TryLock(ctx, "orders", "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
