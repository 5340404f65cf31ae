// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache implements the in-process TTL cache shared by every
// concurrently handled request. Expiry is lazy: an entry whose deadline
// has passed is treated as absent and evicted on the next touch; there is
// no background sweeper. Growth is unbounded over the process lifetime,
// which is accepted at the current key cardinality.
package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

const numShards = 16

type entry struct {
	value     any
	expiresAt time.Time
}

type shard struct {
	mu    sync.RWMutex
	store map[string]entry
}

// Cache is a sharded key→(value, expiry) store. The zero value is not
// usable; construct with New and inject one instance per process.
type Cache struct {
	shards [numShards]*shard

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New returns an empty cache.
func New() *Cache {
	c := &Cache{now: time.Now}
	for i := range c.shards {
		c.shards[i] = &shard{store: make(map[string]entry)}
	}
	return c
}

func (c *Cache) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%numShards]
}

// Get returns the live value for key. An entry past its deadline is
// logically absent and is removed as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	e, ok := s.store[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Before(e.expiresAt) {
		return e.value, true
	}

	// Expired: evict under the write lock, re-checking in case a
	// concurrent Set replaced the entry in between.
	s.mu.Lock()
	if cur, ok := s.store[key]; ok && !c.now().Before(cur.expiresAt) {
		delete(s.store, key)
	}
	s.mu.Unlock()
	return nil, false
}

// Set stores value under key for ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	s := c.shardFor(key)
	s.mu.Lock()
	s.store[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	s.mu.Unlock()
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.store, key)
	s.mu.Unlock()
}

// Len reports how many entries are physically stored, including entries
// that have expired but not yet been touched.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.store)
		s.mu.RUnlock()
	}
	return n
}
