package locks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pmtrack/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LocalLocker_WhenKeyHeld_ReturnsErrLockHeld(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.TryLock(context.Background(), "summary:a", time.Minute)
	require.NoError(t, err)

	_, err = locker.TryLock(context.Background(), "summary:a", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	otherRelease, err := locker.TryLock(context.Background(), "summary:b", time.Minute)
	require.NoError(t, err)
	otherRelease()

	release()

	again, err := locker.TryLock(context.Background(), "summary:a", time.Minute)
	require.NoError(t, err)
	again()
}

func Test_LocalLocker_ReleaseCalledTwice_DoesNotFreeNewOwner(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.TryLock(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	release()

	secondRelease, err := locker.TryLock(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	defer secondRelease()

	release()

	_, err = locker.TryLock(context.Background(), "key", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)
}

func Test_LocalLocker_WithConcurrentCallers_GrantsSingleOwner(t *testing.T) {
	locker := NewLocalLocker()

	var owners atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := locker.TryLock(context.Background(), "contended", time.Minute); err == nil {
				owners.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), owners.Load())
}

func Test_ValkeyLocker_WhenKeyHeld_ReturnsErrLockHeld(t *testing.T) {
	client := cache.GetCache()
	if client == nil {
		t.Skip("valkey is not configured")
	}

	locker := NewValkeyLocker(client)
	key := "test:" + time.Now().Format(time.RFC3339Nano)

	release, err := locker.TryLock(context.Background(), key, 5*time.Second)
	require.NoError(t, err)

	_, err = locker.TryLock(context.Background(), key, 5*time.Second)
	assert.ErrorIs(t, err, ErrLockHeld)

	release()

	again, err := locker.TryLock(context.Background(), key, 5*time.Second)
	require.NoError(t, err)
	again()
}
