package adapter

import "context"

// KeyLocker serializes work on a single key across concurrent requests and instances.
type KeyLocker interface {
	// Lock blocks until the key is held or ctx ends. The returned func releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
