// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/cache"
	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// HomepageCacheKey is the dedicated key of the homepage composite. The
// assembled page is cached as a single unit with its own TTL, on top of
// whatever the facade cached for the constituent calls.
const HomepageCacheKey = "homepage_complete_data"

// Constituent page sizes. The homepage samples each collection rather
// than paging through it.
const (
	homepageWorksLimit   = 12
	homepageVenuesLimit  = 20
	homepagePersonsLimit = 50
	homepageOrgsLimit    = 25

	recentWorksCap = 8
	topVenuesCap   = 10
	topVenuesPool  = 15
	topOrgsCap     = 10

	minTopVenueWorks = 5

	// orgsTimeout bounds the organizations call, which is the slowest
	// upstream endpoint and must not stall the page.
	orgsTimeout = 3 * time.Second

	// sampleScale estimates a collection total from an unpaginated
	// sample page.
	sampleScale = 10
)

// HomepageStats are the headline collection counts.
type HomepageStats struct {
	TotalWorks         int `json:"total_works" yaml:"total_works"`
	TotalVenues        int `json:"total_venues" yaml:"total_venues"`
	TotalAuthors       int `json:"total_authors" yaml:"total_authors"`
	TotalOrganizations int `json:"total_organizations" yaml:"total_organizations"`
}

// HomepageData is the assembled homepage composite.
type HomepageData struct {
	Stats            HomepageStats                  `json:"stats" yaml:"stats"`
	RecentWorks      []types.NormalizedWork         `json:"recent_works" yaml:"recent_works"`
	TopVenues        []types.NormalizedVenue        `json:"top_venues" yaml:"top_venues"`
	TopOrganizations []types.NormalizedOrganization `json:"top_organizations" yaml:"top_organizations"`
}

// Homepage assembles the homepage from four constituent calls, serving
// and refreshing the composite through the shared cache. Each
// constituent that fails substitutes its own documented fallback
// statistic; one slow or dead endpoint never hides the others' data.
func Homepage(ctx context.Context, f Fetcher, c *cache.Cache, cfg types.GatewayConfig, log zerolog.Logger) HomepageData {
	if v, ok := c.Get(HomepageCacheKey); ok {
		if data, ok := v.(HomepageData); ok {
			log.Debug().Msg("homepage served from cache")
			return data
		}
	}

	var data HomepageData
	fb := cfg.Fallback

	data.RecentWorks = homepageRecentWorks(ctx, f, log)

	venuesEnv, venuesOK := fetchEnvelope(ctx, f,
		upstream.NewRequest("/venues", upstream.Params{"limit": homepageVenuesLimit, "page": 1}).Cached())
	if venuesOK {
		data.Stats.TotalVenues, data.TopVenues = homepageVenues(venuesEnv)
	} else {
		log.Warn().Msg("homepage venues unavailable, using fallback stat")
		data.Stats.TotalVenues = fb.TotalVenues
	}

	data.Stats.TotalAuthors = homepagePersonsTotal(ctx, f)
	if data.Stats.TotalAuthors == 0 {
		log.Warn().Msg("homepage persons unavailable, using fallback stat")
		data.Stats.TotalAuthors = fb.TotalAuthors
	}

	orgsTotal, topOrgs := homepageOrganizations(ctx, f)
	data.TopOrganizations = topOrgs
	data.Stats.TotalOrganizations = orgsTotal
	if orgsTotal == 0 {
		log.Warn().Msg("homepage organizations unavailable, using fallback stat")
		data.Stats.TotalOrganizations = fb.TotalOrganizations
	}

	// The works listing carries no total of its own. The venues
	// pagination total is the closest live proxy; the fallback constant
	// covers the rest.
	if venuesOK && venuesEnv.Pagination != nil && venuesEnv.Pagination.Total > 0 {
		data.Stats.TotalWorks = venuesEnv.Pagination.Total
	} else {
		data.Stats.TotalWorks = fb.TotalWorks
	}

	c.Set(HomepageCacheKey, data, cfg.Cache.HomepageTTL)
	return data
}

// homepageRecentWorks takes the first titled works of the newest page,
// with authors formatted from the preview list.
func homepageRecentWorks(ctx context.Context, f Fetcher, log zerolog.Logger) []types.NormalizedWork {
	env, ok := fetchEnvelope(ctx, f,
		upstream.NewRequest("/works", upstream.Params{"limit": homepageWorksLimit, "page": 1}).Cached())
	if !ok {
		log.Warn().Msg("homepage works unavailable")
		return nil
	}
	raws, ok := decodeWorks(env)
	if !ok {
		return nil
	}

	var recent []types.NormalizedWork
	for _, raw := range raws {
		if len(recent) == recentWorksCap {
			break
		}
		w, ok := normalize.CatalogWork(raw)
		if !ok {
			continue
		}
		w.FormattedAuthors = normalize.FormatAuthors(previewNames(raw), 2, raw.AuthorCount)
		recent = append(recent, w)
	}
	return recent
}

func previewNames(raw normalize.RawWork) []string {
	names := make([]string, 0, len(raw.AuthorsPreview))
	for _, n := range raw.AuthorsPreview {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// homepageVenues derives the venue total and picks the best-stocked
// venues from the head of the listing, skipping noise names.
func homepageVenues(env normalize.Envelope) (total int, top []types.NormalizedVenue) {
	items, ok := env.List()
	if !ok {
		return 0, nil
	}
	raws := normalize.DecodeList[normalize.RawVenue](items)

	if env.Pagination != nil && env.Pagination.Total > 0 {
		total = env.Pagination.Total
	} else {
		total = len(raws)
	}

	pool := raws
	if len(pool) > topVenuesPool {
		pool = pool[:topVenuesPool]
	}
	for _, raw := range pool {
		if raw.WorksCount <= minTopVenueWorks || normalize.NoisyVenueName(raw.Name) {
			continue
		}
		if v, ok := normalize.Venue(raw); ok {
			top = append(top, v)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].WorksCount > top[j].WorksCount
	})
	if len(top) > topVenuesCap {
		top = top[:topVenuesCap]
	}
	return total, top
}

func homepagePersonsTotal(ctx context.Context, f Fetcher) int {
	env, ok := fetchEnvelope(ctx, f,
		upstream.NewRequest("/persons", upstream.Params{"limit": homepagePersonsLimit, "page": 1}).Cached())
	if !ok {
		return 0
	}
	items, ok := env.List()
	if !ok {
		return 0
	}
	if env.Pagination != nil && env.Pagination.Total > 0 {
		return env.Pagination.Total
	}
	return len(items) * sampleScale
}

func homepageOrganizations(ctx context.Context, f Fetcher) (total int, top []types.NormalizedOrganization) {
	req := upstream.NewRequest("/organizations", upstream.Params{"limit": homepageOrgsLimit, "page": 1}).
		Cached().WithTimeout(orgsTimeout)
	env, ok := fetchEnvelope(ctx, f, req)
	if !ok {
		return 0, nil
	}
	items, ok := env.List()
	if !ok {
		return 0, nil
	}
	raws := normalize.DecodeList[normalize.RawOrganization](items)

	if env.Pagination != nil && env.Pagination.Total > 0 {
		total = env.Pagination.Total
	} else {
		total = len(raws) * sampleScale
	}

	for _, raw := range raws {
		if normalize.NoisyOrganizationName(raw.Name) || raw.ResearchersCount() <= 0 {
			continue
		}
		if o, ok := normalize.Organization(raw); ok {
			top = append(top, o)
		}
		if len(top) == topOrgsCap {
			break
		}
	}
	return total, top
}
