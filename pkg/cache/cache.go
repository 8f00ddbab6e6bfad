package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through entity cache used by the
// repositories. Implementations: Redis (production) and an in-memory
// map (tests, cache-disabled deployments).
type Cache interface {
	// Get looks up key and unmarshals the stored value into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
