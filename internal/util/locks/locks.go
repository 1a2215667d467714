package locks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

var ErrLockHeld = errors.New("lock is held by another process")

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "pm_lock:"
)

// KeyedLocker grants exclusive ownership of a key. TryLock never waits:
// it either returns a release func or ErrLockHeld.
type KeyedLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Acquire sets the key only if absent, with a millisecond expiry so a
// crashed owner cannot hold the lock forever.
const acquireLuaScript = `
if redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
    return 1
end
return 0
`

// Release deletes the key only while it still holds our token.
const releaseLuaScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`

type ValkeyLocker struct {
	client valkey.Client
}

func NewValkeyLocker(client valkey.Client) *ValkeyLocker {
	return &ValkeyLocker{client: client}
}

func (l *ValkeyLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fullKey := keyPrefix + key
	token := uuid.New().String()

	result := l.client.Do(ctx, l.client.B().Eval().
		Script(acquireLuaScript).
		Numkeys(1).
		Key(fullKey).
		Arg(token).
		Arg(fmt.Sprintf("%d", ttl.Milliseconds())).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("lock acquire failed: %w", result.Error())
	}

	acquired, err := result.AsInt64()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lock result: %w", err)
	}

	if acquired != 1 {
		return nil, ErrLockHeld
	}

	return func() {
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer releaseCancel()

		l.client.Do(releaseCtx, l.client.B().Eval().
			Script(releaseLuaScript).
			Numkeys(1).
			Key(fullKey).
			Arg(token).
			Build())
	}, nil
}

// LocalLocker serializes owners inside one process. Used when no valkey
// is configured. The ttl is ignored since the owner cannot outlive the process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLockHeld
	}

	l.held[key] = struct{}{}

	var releaseOnce sync.Once
	return func() {
		releaseOnce.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

// NewLocker picks the distributed implementation when a client is available
func NewLocker(client valkey.Client) KeyedLocker {
	if client == nil {
		return NewLocalLocker()
	}

	return NewValkeyLocker(client)
}
