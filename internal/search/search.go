// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs the strategy chain that routes a query to the
// right upstream backend: the plain catalog listing for wildcards, the
// filtered works backend for structured queries, and the primary
// full-text engine with a works fallback for free text.
package search

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Fetcher resolves one upstream request. The cache-aware facade
// implements it; tests substitute scripted fakes.
type Fetcher interface {
	Fetch(ctx context.Context, req upstream.Request) upstream.Outcome
}

// Filters are the structured search constraints. Any non-zero field
// routes the query to the filtered works backend, which is terminal:
// filtered semantics must not silently degrade to an unfiltered engine.
type Filters struct {
	WorkType     string
	YearFrom     int
	YearTo       int
	Language     string
	Venue        string
	PeerReviewed *bool
}

// Empty reports whether no structured constraint is set.
func (f Filters) Empty() bool {
	return f.WorkType == "" && f.YearFrom == 0 && f.YearTo == 0 &&
		f.Language == "" && f.Venue == "" && f.PeerReviewed == nil
}

// Query holds one search request. Term fields are tried in order
// (free text, title, author, venue); a query with none of them, or with
// the literal "*", is a wildcard and browses the catalog instead.
type Query struct {
	Text    string
	Title   string
	Author  string
	Page    int
	Limit   int
	Filters Filters
}

// Term resolves the effective search term.
func (q Query) Term() string {
	switch {
	case q.Text != "" && q.Text != "*":
		return q.Text
	case q.Title != "":
		return q.Title
	case q.Author != "":
		return q.Author
	case q.Filters.Venue != "":
		return q.Filters.Venue
	}
	return ""
}

// Wildcard reports whether the query should browse the catalog listing.
func (q Query) Wildcard() bool {
	return q.Term() == ""
}

// Engine tags recorded on results so callers can tell which backend
// served the page.
const (
	EngineCatalog  = "catalog"
	EngineFulltext = "fulltext"
)

// Result is one resolved search page.
type Result struct {
	Works      []types.NormalizedWork `json:"works" yaml:"works"`
	Pagination types.PaginationInfo   `json:"pagination" yaml:"pagination"`

	// Engine names the backend that served the page: the primary
	// engine's name, "fulltext" for the works backend, or "catalog".
	Engine string `json:"engine" yaml:"engine"`

	// Unavailable is set when every applicable backend failed and the
	// page is empty for infrastructural rather than relevance reasons.
	Unavailable bool `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

// Run resolves the query through the strategy chain and enriches the
// first results with per-item detail. Structured filters take
// precedence over the wildcard check: a filter-only query must reach
// the filtered backend, never the unconstrained catalog browse. Run
// never returns an error: an exhausted chain yields an empty Result
// flagged Unavailable, matching the product rule that search degrades
// rather than breaks.
func Run(ctx context.Context, f Fetcher, q Query, cfg types.SearchConfig, log zerolog.Logger) Result {
	page, limit := normalizePage(q, cfg)

	var res Result
	switch {
	case !q.Filters.Empty():
		res = filteredPage(ctx, f, q, page, limit, log)
	case q.Wildcard():
		res = catalogPage(ctx, f, page, limit, log)
	default:
		res = freeTextPage(ctx, f, q, page, limit, cfg, log)
	}

	res.Works = Enrich(ctx, f, res.Works, cfg, log)
	return res
}

func normalizePage(q Query, cfg types.SearchConfig) (page, limit int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	return page, limit
}

// catalogPage browses /works directly. Catalog pages are not quality
// gated: a browse surface shows the catalog as it is.
func catalogPage(ctx context.Context, f Fetcher, page, limit int, log zerolog.Logger) Result {
	req := upstream.NewRequest("/works", upstream.Params{"page": page, "limit": limit})
	out := f.Fetch(ctx, req)
	if !out.OK() {
		log.Warn().Stringer("status", out.Status).Msg("catalog listing unavailable")
		return Result{Engine: EngineCatalog, Pagination: normalize.PaginationFromTotal(page, limit, 0), Unavailable: true}
	}
	res := decodePage(out.Payload, page, limit)
	res.Engine = EngineCatalog
	return res
}

// filteredPage queries the filtered works backend. The step is
// terminal: no other backend understands the constraints, so a failure
// produces an empty result rather than a fallback.
func filteredPage(ctx context.Context, f Fetcher, q Query, page, limit int, log zerolog.Logger) Result {
	params := upstream.Params{"q": q.Term(), "page": page, "limit": limit}
	fl := q.Filters
	if fl.WorkType != "" {
		params["work_type"] = fl.WorkType
	}
	if fl.YearFrom > 0 {
		params["year_from"] = fl.YearFrom
	}
	if fl.YearTo > 0 {
		params["year_to"] = fl.YearTo
	}
	if fl.Language != "" {
		params["language"] = fl.Language
	}
	if fl.Venue != "" {
		params["venue"] = fl.Venue
	}
	if fl.PeerReviewed != nil {
		params["peer_reviewed"] = *fl.PeerReviewed
	}

	out := f.Fetch(ctx, upstream.NewRequest("/search/works", params).Cached())
	if !out.OK() {
		log.Warn().Stringer("status", out.Status).Str("q", q.Term()).Msg("filtered search unavailable")
		return Result{Engine: EngineFulltext, Pagination: normalize.PaginationFromTotal(page, limit, 0), Unavailable: true}
	}
	res := decodePage(out.Payload, page, limit)
	res.Engine = EngineFulltext
	return res
}

// freeTextPage tries the primary engine first and falls back to the
// works backend when the primary response is missing, error-flagged, or
// empty. The result is tagged with whichever engine actually served it.
func freeTextPage(ctx context.Context, f Fetcher, q Query, page, limit int, cfg types.SearchConfig, log zerolog.Logger) Result {
	engine := cfg.PrimaryEngine
	if engine == "" {
		engine = types.DefaultEngine
	}
	params := upstream.Params{"q": q.Term(), "page": page, "limit": limit}

	out := f.Fetch(ctx, upstream.NewRequest("/search/"+engine, params).Cached())
	if out.OK() {
		if env, err := normalize.ParseEnvelope(out.Payload); err == nil && usable(env) {
			res := decodeEnvelope(env, page, limit)
			if res.Engine == "" {
				res.Engine = engine
			}
			return res
		}
	}

	log.Warn().Str("engine", engine).Str("q", q.Term()).Msg("primary engine failed, falling back to works search")
	out = f.Fetch(ctx, upstream.NewRequest("/search/works", params).Cached())
	if !out.OK() {
		return Result{Engine: EngineFulltext, Pagination: normalize.PaginationFromTotal(page, limit, 0), Unavailable: true}
	}
	res := decodePage(out.Payload, page, limit)
	if res.Engine == "" || res.Engine == EngineCatalog {
		res.Engine = EngineFulltext
	}
	return res
}

// usable reports whether a primary-engine envelope carries servable
// results. An error flag, missing data, or an empty result set all send
// the chain to the fallback.
func usable(env normalize.Envelope) bool {
	if env.IsError() || !env.HasData() {
		return false
	}
	if d, ok := env.Object(); ok {
		return len(d.Results) > 0
	}
	return true
}

func decodePage(payload []byte, page, limit int) Result {
	env, err := normalize.ParseEnvelope(payload)
	if err != nil {
		return Result{Pagination: normalize.PaginationFromTotal(page, limit, 0)}
	}
	return decodeEnvelope(env, page, limit)
}

// decodeEnvelope converts either envelope shape into a Result. The
// object form (primary engine) carries its own total; the list form
// carries an optional pagination block.
func decodeEnvelope(env normalize.Envelope, page, limit int) Result {
	if d, ok := env.Object(); ok {
		return Result{
			Works:      convertRaw(normalize.DecodeList[normalize.RawWork](d.Results)),
			Pagination: normalize.PaginationFromTotal(page, limit, d.Total),
		}
	}

	var works []types.NormalizedWork
	if items, ok := env.List(); ok {
		works = convertRaw(normalize.DecodeList[normalize.RawWork](items))
	}
	res := Result{
		Works:      works,
		Pagination: normalize.Pagination(env.Pagination, page, limit, env.Total),
	}
	if eng, ok := env.Meta["search_engine"].(string); ok && eng != "" {
		res.Engine = eng
	}
	return res
}

// convertRaw normalizes a page of raw works without quality gating.
// Search pages show every hit the backend returned; the gate applies
// only on surfaces that advertise curated results.
func convertRaw(raws []normalize.RawWork) []types.NormalizedWork {
	out := make([]types.NormalizedWork, 0, len(raws))
	for _, raw := range raws {
		if w, ok := normalize.CatalogWork(raw); ok {
			out = append(out, w)
		}
	}
	return out
}
