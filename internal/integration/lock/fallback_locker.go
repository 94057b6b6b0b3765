package lock

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commitly/backend/internal/application/adapter"
)

// FallbackLocker takes keys on the shared lock and switches to a process-local one
// for every call that finds the shared store unreachable.
type FallbackLocker struct {
	shared adapter.KeyLocker
	local  adapter.KeyLocker
}

// NewFallbackLocker creates a new FallbackLocker instance.
func NewFallbackLocker(shared, local adapter.KeyLocker) adapter.KeyLocker {
	return &FallbackLocker{shared: shared, local: local}
}

// Lock only falls back on ErrLockUnavailable. Timeouts and cancellation are returned as is.
func (l *FallbackLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := l.shared.Lock(ctx, key)
	if !errors.Is(err, ErrLockUnavailable) {
		return unlock, err
	}

	slog.Warn("Shared lock unavailable, using process-local lock",
		"key", key,
		"error", err,
	)
	return l.local.Lock(ctx, key)
}
