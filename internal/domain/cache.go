package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error type for cache outcomes.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port the category cache is written against.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. An expiration of 0 keeps it until evicted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}
