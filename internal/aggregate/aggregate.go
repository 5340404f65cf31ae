// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate builds the composite pages of the catalog: the
// homepage, work/venue/organization detail, scoped work listings, and
// the PPGAS program views. Every composer degrades per constituent: a
// failed upstream call empties or substitutes its own section and never
// takes down the page.
package aggregate

import (
	"context"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Fetcher resolves one upstream request. The cache-aware facade
// implements it; tests substitute scripted fakes.
type Fetcher interface {
	Fetch(ctx context.Context, req upstream.Request) upstream.Outcome
}

// listingLimit is the page size of the scoped work and entity listings.
const listingLimit = 25

// fetchEnvelope resolves a request and parses the response envelope.
// The second return is false on any failure, including a malformed or
// error-flagged body.
func fetchEnvelope(ctx context.Context, f Fetcher, req upstream.Request) (normalize.Envelope, bool) {
	out := f.Fetch(ctx, req)
	if !out.OK() {
		return normalize.Envelope{}, false
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil || env.IsError() {
		return normalize.Envelope{}, false
	}
	return env, true
}

// lenientWorks converts a raw record list, keeping untitled records
// under the fallback label.
func lenientWorks(items []normalize.RawWork) []types.NormalizedWork {
	out := make([]types.NormalizedWork, 0, len(items))
	for _, raw := range items {
		out = append(out, normalize.LenientWork(raw))
	}
	return out
}

// decodeWorks extracts a list-form envelope into lenient work records.
func decodeWorks(env normalize.Envelope) ([]normalize.RawWork, bool) {
	items, ok := env.List()
	if !ok {
		return nil, false
	}
	return normalize.DecodeList[normalize.RawWork](items), true
}
