// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Live search result caps per record type. The live page trades depth
// for breadth, so each section stays short.
const (
	liveWorksLimit   = 20
	liveAuthorsCap   = 10
	liveVenuesCap    = 8
	liveOrgsCap      = 6
	liveSuggestCap   = 5
	liveVenuePool    = 100
	liveOrgPool      = 50
	minSuggestionLen = 3
)

// commonTerms are the fixed anthropology vocabulary used for prefix
// suggestions on the live search page.
var commonTerms = []string{
	"antropologia", "etnografia", "cultura", "sociedade", "ritual",
	"mito", "parentesco", "identidade", "território", "comunidade",
	"tradição", "modernidade", "globalização", "desenvolvimento",
	"gênero", "etnia", "religião", "política", "economia",
}

// LiveType restricts a live search to one record type; LiveAll queries
// every section.
const (
	LiveAll           = "all"
	LiveWorks         = "works"
	LiveAuthors       = "authors"
	LiveVenues        = "venues"
	LiveOrganizations = "organizations"
)

// LiveResult is the multi-type result of one live search.
type LiveResult struct {
	Works         []types.NormalizedWork         `json:"works" yaml:"works"`
	Authors       []types.NormalizedPerson       `json:"authors" yaml:"authors"`
	Venues        []types.NormalizedVenue        `json:"venues" yaml:"venues"`
	Organizations []types.NormalizedOrganization `json:"organizations" yaml:"organizations"`
	Suggestions   []string                       `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	TotalResults  int                            `json:"total_results" yaml:"total_results"`
}

// Live runs the multi-type search: quality-gated works, authors by
// name, venues and organizations by substring over a fixed-size pool,
// plus prefix suggestions from the common vocabulary. Each section is
// independent; a failed constituent leaves its section empty.
func Live(ctx context.Context, f Fetcher, query, typ string, page int, log zerolog.Logger) LiveResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return LiveResult{}
	}
	if typ == "" {
		typ = LiveAll
	}
	if page < 1 {
		page = 1
	}

	var res LiveResult

	if typ == LiveAll || typ == LiveWorks {
		res.Works, res.TotalResults = liveWorks(ctx, f, query, typ, page)
	}
	if typ == LiveAll || typ == LiveAuthors {
		res.Authors = liveAuthors(ctx, f, query, typ)
	}
	if typ == LiveAll || typ == LiveVenues {
		res.Venues = liveVenues(ctx, f, query)
	}
	if typ == LiveAll || typ == LiveOrganizations {
		res.Organizations = liveOrganizations(ctx, f, query)
	}
	res.Suggestions = PrefixSuggestions(query)

	log.Debug().Str("q", query).Str("type", typ).
		Int("works", len(res.Works)).Int("authors", len(res.Authors)).
		Msg("live search resolved")
	return res
}

// liveWorks queries the works backend and applies the quality gate:
// the live page advertises curated hits, unlike the browse surfaces.
func liveWorks(ctx context.Context, f Fetcher, query, typ string, page int) ([]types.NormalizedWork, int) {
	limit, reqPage := liveWorksLimit, page
	if typ != LiveWorks {
		limit, reqPage = 10, 1
	}
	out := f.Fetch(ctx, upstream.NewRequest("/search/works", upstream.Params{
		"q": query, "limit": limit, "page": reqPage,
	}))
	if !out.OK() {
		return nil, 0
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil || !env.HasData() {
		return nil, 0
	}
	items, ok := env.List()
	if !ok {
		return nil, 0
	}
	works := normalize.QualityFilter(normalize.DecodeList[normalize.RawWork](items))
	total := 0
	if env.Pagination != nil {
		total = env.Pagination.Total
	}
	return works, total
}

func liveAuthors(ctx context.Context, f Fetcher, query, typ string) []types.NormalizedPerson {
	limit := liveWorksLimit
	if typ != LiveAuthors {
		limit = 5
	}
	out := f.Fetch(ctx, upstream.NewRequest("/persons", upstream.Params{
		"name": query, "limit": limit,
	}))
	if !out.OK() {
		return nil
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil {
		return nil
	}
	items, ok := env.List()
	if !ok {
		return nil
	}

	var authors []types.NormalizedPerson
	for _, raw := range normalize.DecodeList[normalize.RawPerson](items) {
		if p, ok := normalize.Person(raw); ok {
			authors = append(authors, p)
		}
		if len(authors) == liveAuthorsCap {
			break
		}
	}
	return authors
}

// liveVenues matches the query as a case-insensitive substring over a
// pool of venues, keeping only venues with works, best-stocked first.
func liveVenues(ctx context.Context, f Fetcher, query string) []types.NormalizedVenue {
	out := f.Fetch(ctx, upstream.NewRequest("/venues", upstream.Params{"limit": liveVenuePool}))
	if !out.OK() {
		return nil
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil {
		return nil
	}
	items, ok := env.List()
	if !ok {
		return nil
	}

	q := strings.ToLower(query)
	var venues []types.NormalizedVenue
	for _, raw := range normalize.DecodeList[normalize.RawVenue](items) {
		if !strings.Contains(strings.ToLower(raw.Name), q) || raw.WorksCount <= 0 {
			continue
		}
		if v, ok := normalize.Venue(raw); ok {
			venues = append(venues, v)
		}
	}
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].WorksCount > venues[j].WorksCount
	})
	if len(venues) > liveVenuesCap {
		venues = venues[:liveVenuesCap]
	}
	return venues
}

func liveOrganizations(ctx context.Context, f Fetcher, query string) []types.NormalizedOrganization {
	out := f.Fetch(ctx, upstream.NewRequest("/organizations", upstream.Params{"limit": liveOrgPool}))
	if !out.OK() {
		return nil
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil {
		return nil
	}
	items, ok := env.List()
	if !ok {
		return nil
	}

	q := strings.ToLower(query)
	var orgs []types.NormalizedOrganization
	for _, raw := range normalize.DecodeList[normalize.RawOrganization](items) {
		if !strings.Contains(strings.ToLower(raw.Name), q) {
			continue
		}
		if o, ok := normalize.Organization(raw); ok {
			orgs = append(orgs, o)
		}
		if len(orgs) == liveOrgsCap {
			break
		}
	}
	return orgs
}

// PrefixSuggestions returns the common-vocabulary terms the query is a
// proper prefix of. Queries shorter than three characters get none.
func PrefixSuggestions(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minSuggestionLen {
		return nil
	}
	var out []string
	for _, term := range commonTerms {
		if term != q && strings.HasPrefix(term, q) {
			out = append(out, term)
		}
		if len(out) == liveSuggestCap {
			break
		}
	}
	return out
}

// Autocomplete proxies the upstream autocomplete endpoint. Queries
// shorter than two characters resolve to no suggestions locally.
func Autocomplete(ctx context.Context, f Fetcher, query, typ string, limit int) []types.Suggestion {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil
	}
	if typ == "" {
		typ = LiveAll
	}
	if limit <= 0 {
		limit = 8
	}

	out := f.Fetch(ctx, upstream.NewRequest("/search/autocomplete", upstream.Params{
		"q": query, "type": typ, "limit": limit,
	}))
	if !out.OK() {
		return nil
	}
	env, err := normalize.ParseEnvelope(out.Payload)
	if err != nil || !env.HasData() {
		return nil
	}

	var data struct {
		Suggestions []struct {
			Text      string `json:"text"`
			Type      string `json:"type"`
			Preview   string `json:"preview"`
			WorkCount int    `json:"work_count"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil
	}

	suggestions := make([]types.Suggestion, 0, len(data.Suggestions))
	for _, s := range data.Suggestions {
		preview := s.Preview
		if preview == "" {
			preview = s.Text
		}
		suggestions = append(suggestions, types.Suggestion{
			Text:      s.Text,
			Type:      s.Type,
			Preview:   preview,
			WorkCount: s.WorkCount,
		})
	}
	return suggestions
}
