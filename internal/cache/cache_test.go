// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache() (*Cache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
	c := New()
	c.now = clk.Now
	return c, clk
}

func TestSetThenGetWithinTTL(t *testing.T) {
	c, _ := newTestCache()

	c.Set("works:{\"page\":1}", "payload", 300*time.Second)

	v, ok := c.Get("works:{\"page\":1}")
	require.True(t, ok)
	assert.Equal(t, "payload", v)
}

func TestGetAfterExpiryEvicts(t *testing.T) {
	c, clk := newTestCache()

	c.Set("k", 42, 300*time.Second)
	require.Equal(t, 1, c.Len())

	clk.Advance(301 * time.Second)

	v, ok := c.Get("k")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 0, c.Len(), "expired entry must be purged on touch")
}

func TestEntryVisibleUntilDeadline(t *testing.T) {
	c, clk := newTestCache()

	c.Set("k", "v", 10*time.Second)

	clk.Advance(9 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	// At exactly the deadline the entry is no longer visible.
	clk.Advance(1 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestSetOverwritesAndExtends(t *testing.T) {
	c, clk := newTestCache()

	c.Set("k", "old", 5*time.Second)
	c.Set("k", "new", 60*time.Second)

	clk.Advance(30 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache()

	c.Set("k", "v", time.Minute)
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache()

	_, ok := c.Get("never-set")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d", j%17)
				c.Set(key, n, time.Minute)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 17, c.Len())
}
