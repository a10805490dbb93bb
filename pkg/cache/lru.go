// Package cache implements the engine's two-tier content-addressed cache
// (spec §4.6): a bounded, thread-safe LRU with single-flight coalescing of
// concurrent misses for the same key, grounded on the
// AleutianAI/AleutianFOSS trace service's BlastRadiusCache
// (services/trace/cache/blast_radius_cache.go) -- its
// container/list-backed LRU plus golang.org/x/sync/singleflight.Group
// shape, generalised here to a single generic type reused for both the AST
// tier and the HTML tier instead of one hand-written cache per value type.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	key   string
	value V
	elem  *list.Element
}

// LRU is a bounded, thread-safe, content-addressed cache keyed by string
// (the engine always keys by a content hash, spec §4.6). Entries are
// immutable once stored; eviction removes an entry from the index but never
// mutates or invalidates a value a caller already holds a reference to.
type LRU[V any] struct {
	mu       sync.RWMutex
	capacity int
	items    map[string]*entry[V]
	order    *list.List
	flight   singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewLRU creates an LRU bounded to capacity entries (minimum 1).
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*entry[V]),
		order:    list.New(),
	}
}

// Get returns the cached value for key and whether it was present.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.mu.Lock()
	c.order.MoveToFront(e.elem)
	c.mu.Unlock()
	return e.value, true
}

// Put inserts or refreshes key's value, evicting the least-recently-used
// entry if the cache is over capacity.
func (c *LRU[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		c.order.MoveToFront(e.elem)
		return
	}

	e := &entry[V]{key: key, value: value}
	e.elem = c.order.PushFront(key)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldestLocked()
	}
}

func (c *LRU[V]) evictOldestLocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	key := back.Value.(string)
	c.order.Remove(back)
	delete(c.items, key)
	c.evictions.Add(1)
}

// GetOrCompute returns the cached value for key, computing it via compute on
// a miss. Concurrent callers racing on the same key share a single
// computation (spec §4.6: "coalesce duplicate misses so concurrent callers
// with the same key share one build").
func (c *LRU[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	result, err, _ := c.flight.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Len returns the current number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear empties the cache.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
	c.order.Init()
}

// Stats reports point-in-time counters for one cache tier.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
	Capacity  int
}

// Stats returns current cache statistics.
func (c *LRU[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       len(c.items),
		Capacity:  c.capacity,
	}
}
