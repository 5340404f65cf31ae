// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upstream issues retried, timeout-bounded GET requests against
// the catalog API and classifies every outcome into a closed set of
// statuses. Callers never see a transport error; they pattern-match on
// the Outcome instead.
package upstream

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Params carries the query parameters of one request. Insertion order is
// irrelevant; the cache key serializes keys in sorted order.
type Params map[string]any

// UseClientDefaults marks a Request field as "take the client's
// configured value".
const UseClientDefaults = -1

// Request describes a single logical call to the upstream API. It is
// immutable once constructed; build one with NewRequest and adjust the
// budget fields before first use.
type Request struct {
	// Endpoint is the upstream path, starting with "/" (e.g. "/works").
	Endpoint string

	// Params are the query parameters; scalar values only.
	Params Params

	// Timeout bounds each attempt. Zero means the client default.
	// Low-stakes enrichment calls use a short budget so they cannot
	// stall a composite page.
	Timeout time.Duration

	// Retries is the retry budget after the first attempt.
	// UseClientDefaults takes the client's configured budget.
	Retries int

	// Cacheable marks the request for read-through caching by the
	// facade. Only Success payloads are ever stored.
	Cacheable bool

	// CacheTTL overrides the facade's default TTL when nonzero.
	CacheTTL time.Duration
}

// NewRequest returns a non-cacheable request with the client's default
// timeout and retry budget.
func NewRequest(endpoint string, params Params) Request {
	return Request{Endpoint: endpoint, Params: params, Retries: UseClientDefaults}
}

// Cached returns a copy of the request marked cacheable.
func (r Request) Cached() Request {
	r.Cacheable = true
	return r
}

// WithTimeout returns a copy of the request with a per-call timeout.
func (r Request) WithTimeout(d time.Duration) Request {
	r.Timeout = d
	return r
}

// CacheKey derives the canonical cache key: the endpoint plus the
// parameters serialized as JSON with sorted keys, or the literal "None"
// when there are none.
func (r Request) CacheKey() string {
	if len(r.Params) == 0 {
		return r.Endpoint + ":None"
	}
	// encoding/json (and its goccy drop-in) marshals map keys in
	// sorted order, which is exactly the stable form the key needs.
	b, err := json.Marshal(r.Params)
	if err != nil {
		return r.Endpoint + ":" + fmt.Sprintf("%v", r.Params)
	}
	return r.Endpoint + ":" + string(b)
}

// queryString renders Params as an URL-encoded query string.
func (r Request) queryString() string {
	if len(r.Params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := url.Values{}
	for _, k := range keys {
		v.Set(k, scalarString(r.Params[k]))
	}
	return v.Encode()
}

func scalarString(val any) string {
	switch x := val.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
