// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeySortsParams(t *testing.T) {
	a := NewRequest("/works", Params{"page": 1, "limit": 25})
	b := NewRequest("/works", Params{"limit": 25, "page": 1})

	assert.Equal(t, a.CacheKey(), b.CacheKey(), "key must not depend on insertion order")
	assert.Equal(t, `/works:{"limit":25,"page":1}`, a.CacheKey())
}

func TestCacheKeyWithoutParams(t *testing.T) {
	r := NewRequest("/venues/statistics", nil)
	assert.Equal(t, "/venues/statistics:None", r.CacheKey())
}

func TestCacheKeyDistinguishesEndpoints(t *testing.T) {
	a := NewRequest("/works", Params{"page": 1})
	b := NewRequest("/venues", Params{"page": 1})
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}

func TestQueryStringScalars(t *testing.T) {
	r := NewRequest("/search/works", Params{
		"q":             "ritual",
		"page":          2,
		"peer_reviewed": true,
	})
	assert.Equal(t, "page=2&peer_reviewed=true&q=ritual", r.queryString())
}

func TestRequestBuilders(t *testing.T) {
	r := NewRequest("/organizations", Params{"limit": 25}).Cached().WithTimeout(3 * time.Second)

	assert.True(t, r.Cacheable)
	assert.Equal(t, 3*time.Second, r.Timeout)
	assert.Equal(t, UseClientDefaults, r.Retries)

	// The original request value is unchanged by the builders.
	base := NewRequest("/organizations", Params{"limit": 25})
	assert.False(t, base.Cacheable)
	assert.Zero(t, base.Timeout)
}
