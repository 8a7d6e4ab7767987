package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNoExpiry is returned by TTL when the key exists but never expires.
var ErrNoExpiry = errors.New("transient has no expiry")

// TransientStore is the expiring key-value store backing plugin transients.
// Implementations: Redis (shared across instances) or in-memory (single instance).
//
// A Get miss returns (nil, nil). Expired entries are indistinguishable from
// entries that were never set.
type TransientStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// TTL reports the remaining lifetime of key. A missing key returns (0, nil).
	TTL(ctx context.Context, key string) (time.Duration, error)
}
