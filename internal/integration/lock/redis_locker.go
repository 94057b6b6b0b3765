// Package lock provides adapter.KeyLocker implementations.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/commitly/backend/internal/application/adapter"
)

var (
	// ErrLockTimeout is returned when a key stays held for longer than the configured wait.
	ErrLockTimeout = errors.New("timed out waiting for lock")
	// ErrLockUnavailable is returned when the lock store cannot be reached.
	ErrLockUnavailable = errors.New("lock store unavailable")
)

// releaseScript deletes the lock only while it still carries the caller's token, so an
// expired holder cannot release a lock that another request has since acquired.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a lease-based lock shared by every API instance.
type RedisLocker struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

// NewRedisLocker creates a new RedisLocker instance.
func NewRedisLocker(client *redis.Client, ttl, wait, backoff time.Duration) adapter.KeyLocker {
	return &RedisLocker{
		client:  client,
		prefix:  "commitly:lock:",
		ttl:     ttl,
		wait:    wait,
		backoff: backoff,
	}
}

// Lock acquires the key with SET NX PX and polls until it succeeds, the wait elapses or
// ctx ends.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.backoff)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: lock %s: %w", ErrLockUnavailable, key, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("Failed to release lock",
				"key", redisKey,
				"error", err,
			)
		}
	}
}
