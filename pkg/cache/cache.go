// Package cache stores laid-out diagrams and rendered artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// HTTP server and [NullCache] to disable caching. Keys come from a [Keyer]
// so that every backend shares one key scheme; [ScopedKeyer] namespaces
// keys per tenant.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	DiagramTTL  = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
