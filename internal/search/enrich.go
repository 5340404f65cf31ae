// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Enrich fetches per-work detail for the first cfg.EnrichLimit results
// and overlays the richer fields onto each summary record. Enrichment
// is best effort: a failed or malformed detail fetch leaves the summary
// untouched, and items past the limit pass through unenriched so one
// slow page cannot stall the whole result.
func Enrich(ctx context.Context, f Fetcher, works []types.NormalizedWork, cfg types.SearchConfig, log zerolog.Logger) []types.NormalizedWork {
	limit := cfg.EnrichLimit
	if limit <= 0 {
		limit = types.DefaultEnrichLimit
	}
	if limit > len(works) {
		limit = len(works)
	}

	out := make([]types.NormalizedWork, len(works))
	copy(out, works)

	for i := 0; i < limit; i++ {
		if out[i].ID == "" {
			continue
		}
		detail, ok := FetchDetail(ctx, f, out[i].ID)
		if !ok {
			log.Debug().Str("work_id", out[i].ID).Msg("enrichment skipped")
			continue
		}
		out[i] = normalize.MergeDetail(out[i], detail)
	}
	return out
}

// FetchDetail resolves /works/{id} into a normalized record. The
// second return is false when the call failed or the body did not
// contain a usable work.
func FetchDetail(ctx context.Context, f Fetcher, id string) (types.NormalizedWork, bool) {
	out := f.Fetch(ctx, upstream.NewRequest("/works/"+id, nil))
	if !out.OK() {
		return types.NormalizedWork{}, false
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil || !env.HasData() {
		return types.NormalizedWork{}, false
	}
	var raw normalize.RawWork
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return types.NormalizedWork{}, false
	}
	return normalize.CatalogWork(raw)
}
