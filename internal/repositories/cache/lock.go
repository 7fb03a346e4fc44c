package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockHeld = errors.New("lock is already held")

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Locker hands out short-lived Redis locks keyed by name. Each
// acquisition uses a random token so only the holder can release it.
type Locker struct {
	client redis.UniversalClient
	prefix string
}

func NewLocker(client redis.UniversalClient, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// Acquire takes the lock for key or returns ErrLockHeld. The returned
// release func is safe to call after the lock expired.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLockHeld, fullKey)
	}

	release := func() {
		// the request context may already be cancelled
		_ = l.client.Eval(context.Background(), unlockScript, []string{fullKey}, token).Err()
	}
	return release, nil
}
