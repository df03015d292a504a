// Package locker provides distributed locking for coordinating jobs
// across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. It returns
	// true on success and false when another instance holds it. The
	// lock expires on its own after ttl if never released, so ttl
	// doubles as a cooldown period when the holder leaves it in place.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives up the lock identified by key. Calling it for a
	// lock this instance does not own is a no-op.
	Release(ctx context.Context, key string) error
}
