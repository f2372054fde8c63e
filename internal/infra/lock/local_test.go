package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 28, 10, 0, 0, 0, time.UTC)
	l := NewLocalLock()
	l.nowFn = func() time.Time { return now }

	token, ok, err := l.Lock(ctx, "slot:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Lock(ctx, "slot:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second lock must fail while held")

	assert.ErrorIs(t, l.Unlock(ctx, "slot:1", "someone-else"), ErrNotHeld)
	require.NoError(t, l.Unlock(ctx, "slot:1", token))

	_, ok, err = l.Lock(ctx, "slot:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLock_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 28, 10, 0, 0, 0, time.UTC)
	l := NewLocalLock()
	l.nowFn = func() time.Time { return now }

	_, ok, _ := l.Lock(ctx, "slot:1", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.Lock(ctx, "slot:1", time.Second)
	assert.True(t, ok)
}
