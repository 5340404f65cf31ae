// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// VenueDetail is the venue page: the venue record plus a paginated
// works listing restricted to publications with at least one named
// author.
type VenueDetail struct {
	Venue        types.NormalizedVenue  `json:"venue" yaml:"venue"`
	Publications []types.NormalizedWork `json:"publications" yaml:"publications"`
	Pagination   types.PaginationInfo   `json:"pagination" yaml:"pagination"`
}

// BuildVenueDetail assembles the venue page. Pagination derives from
// the venue's own works count, not the filtered page length, so page
// numbers stay stable while unnamed-author records are dropped.
func BuildVenueDetail(ctx context.Context, f Fetcher, venueID string, page int, log zerolog.Logger) (VenueDetail, bool) {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/venues/"+venueID, nil))
	if !ok || !env.HasData() {
		return VenueDetail{}, false
	}
	var raw normalize.RawVenue
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return VenueDetail{}, false
	}
	venue, ok := normalize.Venue(raw)
	if !ok {
		return VenueDetail{}, false
	}

	if page < 1 {
		page = 1
	}
	res := VenueDetail{
		Venue:      venue,
		Pagination: normalize.PaginationFromTotal(page, listingLimit, venue.WorksCount),
	}

	worksEnv, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/venues/"+venueID+"/works",
		upstream.Params{"limit": listingLimit, "page": page}))
	if !ok {
		log.Warn().Str("venue_id", venueID).Msg("venue works unavailable")
		return res, true
	}
	if raws, ok := decodeWorks(worksEnv); ok {
		for _, w := range lenientWorks(raws) {
			if hasNamedAuthor(w.Authors) {
				res.Publications = append(res.Publications, w)
			}
		}
	}
	return res, true
}

func hasNamedAuthor(authors []types.Author) bool {
	for _, a := range authors {
		if a.Name != "" {
			return true
		}
	}
	return false
}

// VenueListing is one page of the complete venues catalog.
type VenueListing struct {
	Venues     []types.NormalizedVenue `json:"venues" yaml:"venues"`
	Pagination types.PaginationInfo    `json:"pagination" yaml:"pagination"`
}

// BuildVenueListing pages through /venues, dropping unnamed records.
func BuildVenueListing(ctx context.Context, f Fetcher, page int, log zerolog.Logger) (VenueListing, bool) {
	if page < 1 {
		page = 1
	}
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/venues",
		upstream.Params{"page": page, "limit": listingLimit}))
	if !ok {
		log.Warn().Msg("venues listing unavailable")
		return VenueListing{}, false
	}
	items, ok := env.List()
	if !ok {
		return VenueListing{}, false
	}

	var res VenueListing
	for _, raw := range normalize.DecodeList[normalize.RawVenue](items) {
		if v, ok := normalize.Venue(raw); ok {
			res.Venues = append(res.Venues, v)
		}
	}
	res.Pagination = normalize.Pagination(env.Pagination, page, listingLimit, len(res.Venues))
	return res, true
}
