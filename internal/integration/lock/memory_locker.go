package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/commitly/backend/internal/application/adapter"
)

// MemoryLocker serializes keys inside one process. It is used when Redis is not configured.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker creates a new MemoryLocker instance.
func NewMemoryLocker(wait time.Duration) adapter.KeyLocker {
	return &MemoryLocker{
		slots: make(map[string]*slot),
		wait:  wait,
	}
}

// Lock waits for the key's slot. Slots are dropped once nobody holds or waits for them.
func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquireSlot(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.releaseSlot(key)
			})
		}, nil
	case <-waitCtx.Done():
		l.releaseSlot(key)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
}

func (l *MemoryLocker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) releaseSlot(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		return
	}
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
