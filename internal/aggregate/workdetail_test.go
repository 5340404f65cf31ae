// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/rs/zerolog"
)

const workBody = `{"data": {
	"id": 42,
	"title": "Ritual Economies of the Highlands",
	"work_type": "BOOK_CHAPTER",
	"doi": "10.1000/rit",
	"publication": {"year": 2015},
	"authors": [
		{"name": "Alice Silva", "affiliation": {"name": "Museu Nacional"}},
		{"name": "Bob Souza", "affiliation": {"name": "Museu Nacional"}},
		{"name": "Carol Lima", "affiliation": "USP"}
	]
}}`

func TestBuildWorkDetail(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/42":         success(workBody),
		"/works/42/metrics": success(`{"data": {"citations": 7}}`),
		"/works/42/references": success(`{"data": {"referenced_works": [
			{"cited_work_id": 1, "title": "First", "year": 1990, "type": "ARTICLE"},
			{"cited_work_id": 2, "year": 1991},
			{"cited_work_id": 3, "title": "Third"},
			{"cited_work_id": 4, "title": "Fourth"},
			{"cited_work_id": 5, "title": "Fifth"}
		]}}`),
	}}

	d, ok := BuildWorkDetail(context.Background(), f, "42", zerolog.Nop())
	require.True(t, ok)

	assert.Equal(t, "Ritual Economies of the Highlands", d.Work.Title)
	assert.Equal(t, 2015, d.Work.Year)
	assert.Equal(t, "https://doi.org/10.1000/rit", d.Work.DOIURL)
	assert.Equal(t, "Book Chapter", d.Work.FormattedType)

	// Affiliations deduplicate in appearance order.
	assert.Equal(t, []string{"Museu Nacional", "USP"}, d.Affiliations)

	assert.Equal(t, float64(7), d.Metrics["citations"])

	require.Len(t, d.References, 4)
	assert.Equal(t, "1", d.References[0].ID)
	assert.Equal(t, "article", d.References[0].WorkType)
	assert.Equal(t, "Título não disponível", d.References[1].Title)
	assert.Equal(t, d.References, d.Related())
	assert.Empty(t, d.Similar)
}

func TestWorkDetailSimilarWorksFallback(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/42":            success(workBody),
		"/works/42/references": success(`{"data": {"referenced_works": []}}`),
		"/search/works": success(`{"data": [
			{"id": 42, "title": "Ritual Economies of the Highlands"},
			{"id": 7, "title": "Ritual Economies Revisited"},
			{"id": 8, "title": "Ritual Economies in Context"}
		]}`),
	}}

	d, ok := BuildWorkDetail(context.Background(), f, "42", zerolog.Nop())
	require.True(t, ok)

	req := f.request("/search/works")
	require.NotNil(t, req)
	assert.Equal(t, "Ritual Economies of", req.Params["q"])

	// The work itself is excluded from its own similar list.
	require.Len(t, d.Similar, 2)
	assert.Equal(t, "7", d.Similar[0].ID)
	assert.Equal(t, d.Similar, d.Related())
}

func TestWorkDetailSurvivesAuxiliaryFailures(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/42": success(workBody),
	}}

	d, ok := BuildWorkDetail(context.Background(), f, "42", zerolog.Nop())
	require.True(t, ok)
	assert.Nil(t, d.Metrics)
	assert.Empty(t, d.References)
	assert.Empty(t, d.Similar)
}

func TestWorkDetailNotFound(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{}}

	_, ok := BuildWorkDetail(context.Background(), f, "404", zerolog.Nop())
	assert.False(t, ok)
}

func TestBatchWorks(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/works/1": success(`{"data": {"id": 1, "title": "One"}}`),
		"/works/3": success(`{"data": {"id": 3, "title": "Three"}}`),
	}}

	works, err := BatchWorks(context.Background(), f, []string{"1", " 2 ", "3", ""}, zerolog.Nop())
	require.NoError(t, err)

	// The unreachable id is skipped, order follows the input.
	require.Len(t, works, 2)
	assert.Equal(t, "One", works[0].Title)
	assert.Equal(t, "Three", works[1].Title)
}

func TestBatchWorksRejectsEmptyAndOversized(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{}}

	_, err := BatchWorks(context.Background(), f, nil, zerolog.Nop())
	assert.Error(t, err)

	_, err = BatchWorks(context.Background(), f, []string{"  ", ""}, zerolog.Nop())
	assert.Error(t, err)

	ids := make([]string, 101)
	for i := range ids {
		ids[i] = "1"
	}
	_, err = BatchWorks(context.Background(), f, ids, zerolog.Nop())
	assert.Error(t, err)
	assert.Empty(t, f.requests)
}
