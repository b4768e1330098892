package listctl

import (
	"context"
	"sync"
)

// ListResult is one fetched page of an entity plus aggregates.
type ListResult[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
	Stats      map[string]int
}

// Cache stores list results keyed by the canonical query key. Entries
// are written only by the fetcher and invalidated only by the mutation
// executor; invalidation drops every entry for the entity so the next
// read after a successful mutation always hits the backend.
//
// Implementations treat their own failures as cache misses: a broken
// cache degrades to uncached reads, it never fails a query.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (ListResult[T], bool)
	Set(ctx context.Context, key string, res ListResult[T])
	Invalidate(ctx context.Context)
}

// MemoryCache is the default in-process Cache.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]ListResult[T]
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{entries: map[string]ListResult[T]{}}
}

func (c *MemoryCache[T]) Get(_ context.Context, key string) (ListResult[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *MemoryCache[T]) Set(_ context.Context, key string, res ListResult[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

func (c *MemoryCache[T]) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]ListResult[T]{}
}

// Len returns the number of cached entries.
func (c *MemoryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
