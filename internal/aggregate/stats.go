// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/upstream"
)

// AnnualStats are the catalog-wide metrics shown in footers and about
// pages.
type AnnualStats struct {
	TotalWorks   int `json:"total_works" yaml:"total_works"`
	TotalAuthors int `json:"total_authors" yaml:"total_authors"`
	TotalVenues  int `json:"total_venues" yaml:"total_venues"`
	Year         int `json:"year" yaml:"year"`
}

// FallbackAnnualStats substitutes for an unreachable metrics endpoint.
var FallbackAnnualStats = AnnualStats{
	TotalWorks:   399302,
	TotalAuthors: 25000,
	TotalVenues:  1500,
	Year:         2025,
}

// BuildAnnualStats proxies /metrics/annual, substituting the static
// fallback when the call fails.
func BuildAnnualStats(ctx context.Context, f Fetcher, log zerolog.Logger) AnnualStats {
	var stats AnnualStats
	if !fetchJSON(ctx, f, upstream.NewRequest("/metrics/annual", nil), &stats) || stats == (AnnualStats{}) {
		log.Warn().Msg("annual metrics unavailable, using fallback")
		return FallbackAnnualStats
	}
	return stats
}
