// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-gateway/internal/cache"
	"github.com/pdiddy/catalog-gateway/internal/logging"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// fakeDoer returns canned outcomes and counts calls per endpoint.
type fakeDoer struct {
	outcome upstream.Outcome
	calls   int
}

func (f *fakeDoer) Do(_ context.Context, _ upstream.Request) upstream.Outcome {
	f.calls++
	return f.outcome
}

func success(body string) upstream.Outcome {
	return upstream.Outcome{Status: upstream.StatusSuccess, Payload: []byte(body), Attempts: 1}
}

func newGateway(d Doer) *Gateway {
	return New(d, cache.New(), types.CacheConfig{TTL: 300 * time.Second}, logging.Nop())
}

func TestFetchCacheableServedFromCache(t *testing.T) {
	d := &fakeDoer{outcome: success(`{"data": [1]}`)}
	g := newGateway(d)
	req := upstream.NewRequest("/works", upstream.Params{"page": 1}).Cached()

	first := g.Fetch(context.Background(), req)
	second := g.Fetch(context.Background(), req)

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, 1, d.calls, "second fetch must not hit the network")
}

func TestFetchNonCacheableAlwaysCallsUpstream(t *testing.T) {
	d := &fakeDoer{outcome: success(`{}`)}
	g := newGateway(d)
	req := upstream.NewRequest("/works/1", nil)

	g.Fetch(context.Background(), req)
	g.Fetch(context.Background(), req)

	assert.Equal(t, 2, d.calls)
}

func TestFetchFailuresAreNeverCached(t *testing.T) {
	d := &fakeDoer{outcome: upstream.Outcome{Status: upstream.StatusServerError, HTTPStatus: 503}}
	g := newGateway(d)
	req := upstream.NewRequest("/venues", nil).Cached()

	first := g.Fetch(context.Background(), req)
	assert.Equal(t, upstream.StatusServerError, first.Status)

	// The upstream recovers; the next call must go through.
	d.outcome = success(`{"data": []}`)
	second := g.Fetch(context.Background(), req)

	assert.True(t, second.OK())
	assert.Equal(t, 2, d.calls)
}

func TestFetchDistinctParamsAreDistinctEntries(t *testing.T) {
	d := &fakeDoer{outcome: success(`{}`)}
	g := newGateway(d)

	g.Fetch(context.Background(), upstream.NewRequest("/works", upstream.Params{"page": 1}).Cached())
	g.Fetch(context.Background(), upstream.NewRequest("/works", upstream.Params{"page": 2}).Cached())

	assert.Equal(t, 2, d.calls)
	assert.Equal(t, 2, g.Cache().Len())
}

func TestFetchHonorsPerRequestTTL(t *testing.T) {
	d := &fakeDoer{outcome: success(`{}`)}
	g := newGateway(d)

	req := upstream.NewRequest("/works", nil).Cached()
	req.CacheTTL = time.Nanosecond
	g.Fetch(context.Background(), req)

	time.Sleep(time.Millisecond)
	g.Fetch(context.Background(), req)

	assert.Equal(t, 2, d.calls, "expired override TTL must force a refetch")
}
