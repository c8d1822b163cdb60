package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs --no-cache and `cache.disabled`.
type NullCache struct{}

var _ Cache = NullCache{}

func NewNullCache() Cache { return NullCache{} }

// Get always misses. It still reports a cancelled context.
func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
