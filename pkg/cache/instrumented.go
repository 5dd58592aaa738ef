package cache

import (
	"context"
	"time"

	"github.com/matzehuels/tlfs/pkg/observability"
)

// Instrumented reports every Get and Set to the registered
// [observability.CacheHooks] under a fixed key type.
type Instrumented struct {
	Cache
	keyType string
}

// Instrument wraps c. keyType labels the events ("artifact").
func Instrument(c Cache, keyType string) *Instrumented {
	return &Instrumented{Cache: c, keyType: keyType}
}

// Get reads key and records a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, c.keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, c.keyType)
	}
	return data, ok, nil
}

// Set writes key and records its size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
