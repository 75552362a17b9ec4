package cache

import (
	"context"
	"time"
)

// Key prefixes shared by the cache store users. The seed loader flushes
// these prefixes after a reseed so readers never serve stale dataset rows.
const (
	PartnerKeyPrefix = "partner:"
	SearchKeyPrefix  = "search:"
	StatsKeyPrefix   = "stats:"
)

// Store is a byte-oriented cache with per-entry TTLs. The partner directory
// uses it for cache-aside reads; deployment tooling uses DeleteByPrefix to
// invalidate whole key families.
type Store interface {
	// Get returns the cached value and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPrefix removes all keys with the given prefix and
	// returns how many were deleted
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)

	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}
