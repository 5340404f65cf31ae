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

func TestBuildVenueDetail(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/venues/5": success(`{"data": {
			"id": 5, "name": "Mana", "works_count": 60, "publisher_name": "UFRJ"
		}}`),
		"/venues/5/works": success(`{"data": [
			{"id": 1, "title": "Named", "authors": [{"name": "Alice Silva"}]},
			{"id": 2, "title": "Anonymous", "authors": []},
			{"id": 3, "title": "Blank Names", "authors": ["  "]}
		]}`),
	}}

	d, ok := BuildVenueDetail(context.Background(), f, "5", 1, zerolog.Nop())
	require.True(t, ok)

	assert.Equal(t, "Mana", d.Venue.Name)
	assert.Equal(t, "UFRJ", d.Venue.PublisherName)

	// Only publications with at least one named author survive.
	require.Len(t, d.Publications, 1)
	assert.Equal(t, "Named", d.Publications[0].Title)

	// Pagination derives from the venue's works count, not the filtered
	// page length.
	assert.Equal(t, 60, d.Pagination.Total)
	assert.Equal(t, 3, d.Pagination.TotalPages)
}

func TestVenueDetailWorksFailureKeepsVenue(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/venues/5":       success(`{"data": {"id": 5, "name": "Mana", "works_count": 60}}`),
		"/venues/5/works": serverError(),
	}}

	d, ok := BuildVenueDetail(context.Background(), f, "5", 1, zerolog.Nop())
	require.True(t, ok)
	assert.Empty(t, d.Publications)
	assert.Equal(t, 60, d.Pagination.Total)
}

func TestVenueDetailNotFound(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{}}

	_, ok := BuildVenueDetail(context.Background(), f, "404", 1, zerolog.Nop())
	assert.False(t, ok)
}

func TestBuildVenueListing(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/venues": success(`{
			"data": [
				{"id": 1, "name": "Mana", "works_count": 60},
				{"id": 2, "name": "   "}
			],
			"pagination": {"total": 80, "page": 1, "limit": 25}
		}`),
	}}

	res, ok := BuildVenueListing(context.Background(), f, 1, zerolog.Nop())
	require.True(t, ok)
	require.Len(t, res.Venues, 1)
	assert.Equal(t, 80, res.Pagination.Total)
	assert.Equal(t, 4, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
}

func TestBuildOrganizationDetail(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/organizations/7": success(`{"data": {
			"id": 7, "name": "Museu Nacional",
			"metrics": {"affiliated_authors_count": 120, "works_count": 300},
			"top_authors": [{"id": 1}]
		}}`),
		"/organizations/7/works": success(`{
			"data": [{"id": 1, "title": "Collections"}],
			"pagination": {"total": 300, "page": 1, "limit": 25}
		}`),
	}}

	d, ok := BuildOrganizationDetail(context.Background(), f, "7", 1, zerolog.Nop())
	require.True(t, ok)

	assert.Equal(t, "Museu Nacional", d.Organization.Name)
	assert.False(t, d.ShowingRecent)
	require.Len(t, d.Works, 1)
	assert.Equal(t, 300, d.Pagination.Total)
	assert.NotEmpty(t, d.TopAuthors)
}

func TestOrganizationDetailRecentWorksFallback(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/organizations/7": success(`{"data": {
			"id": 7, "name": "Museu Nacional",
			"metrics": {"works_count": 300},
			"recent_works": [{"id": 1, "title": "Collections"}, {"id": 2}]
		}}`),
		"/organizations/7/works": serverError(),
	}}

	d, ok := BuildOrganizationDetail(context.Background(), f, "7", 1, zerolog.Nop())
	require.True(t, ok)

	assert.True(t, d.ShowingRecent)
	require.Len(t, d.Works, 2)
	assert.Equal(t, "Título não disponível", d.Works[1].Title)
	assert.Equal(t, 300, d.Pagination.Total)
}

func TestOrganizationDetailRejectsNearEmptyName(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/organizations/7": success(`{"data": {"id": 7, "name": "X"}}`),
	}}

	_, ok := BuildOrganizationDetail(context.Background(), f, "7", 1, zerolog.Nop())
	assert.False(t, ok)
}

func TestBuildOrganizationListing(t *testing.T) {
	f := &fakeFetcher{responses: map[string]upstream.Outcome{
		"/organizations": success(`{
			"data": [
				{"id": 1, "name": "Museu Nacional", "metrics": {"affiliated_authors_count": 120}},
				{"id": 2, "name": "Y"}
			],
			"pagination": {"total": 40, "page": 2, "limit": 25}
		}`),
	}}

	res, ok := BuildOrganizationListing(context.Background(), f, 2, zerolog.Nop())
	require.True(t, ok)
	require.Len(t, res.Organizations, 1)
	assert.Equal(t, 120, res.Organizations[0].PersonsCount)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.True(t, res.Pagination.HasPrev)
	assert.False(t, res.Pagination.HasNext)
}
