// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
	"github.com/rs/zerolog"
)

func TestEnrichOverlaysDetailFields(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/1": success(`{"data": {
			"id": 1,
			"title": "Kinship Structures",
			"abstract": "A long discussion of affinal and consanguineal relations in lowland South America.",
			"doi": "10.1000/kin"
		}}`),
	}}

	summaries := []types.NormalizedWork{
		{ID: "1", Title: "Kinship Structures", QualityScore: 3},
	}
	out := Enrich(context.Background(), f, summaries, testCfg, zerolog.Nop())

	require.Len(t, out, 1)
	assert.Equal(t, "10.1000/kin", out[0].DOI)
	assert.Equal(t, "https://doi.org/10.1000/kin", out[0].DOIURL)
	assert.Contains(t, out[0].Abstract, "affinal")
	// The score computed on the summary page survives enrichment.
	assert.Equal(t, 3, out[0].QualityScore)
}

func TestEnrichIsBestEffort(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/1": serverError(),
	}}

	summaries := []types.NormalizedWork{{ID: "1", Title: "Untouched", Year: 1990}}
	out := Enrich(context.Background(), f, summaries, testCfg, zerolog.Nop())

	require.Len(t, out, 1)
	assert.Equal(t, "Untouched", out[0].Title)
	assert.Equal(t, 1990, out[0].Year)
}

func TestEnrichStopsAtLimit(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{}}

	summaries := make([]types.NormalizedWork, 15)
	for i := range summaries {
		summaries[i] = types.NormalizedWork{ID: "w", Title: "T"}
	}
	cfg := testCfg
	cfg.EnrichLimit = 10
	Enrich(context.Background(), f, summaries, cfg, zerolog.Nop())

	assert.Len(t, f.requests, 10)
}

func TestEnrichSkipsItemsWithoutID(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{}}

	summaries := []types.NormalizedWork{{Title: "No ID"}}
	out := Enrich(context.Background(), f, summaries, testCfg, zerolog.Nop())

	assert.Empty(t, f.requests)
	assert.Equal(t, "No ID", out[0].Title)
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/1": success(`{"data": {"id": 1, "title": "Renamed"}}`),
	}}

	summaries := []types.NormalizedWork{{ID: "1", Title: "Original"}}
	out := Enrich(context.Background(), f, summaries, testCfg, zerolog.Nop())

	assert.Equal(t, "Original", summaries[0].Title)
	assert.Equal(t, "Renamed", out[0].Title)
}

func TestFetchDetailRejectsEmptyBody(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/9": success(`{"data": null}`),
	}}

	_, ok := FetchDetail(context.Background(), f, "9")
	assert.False(t, ok)
}
