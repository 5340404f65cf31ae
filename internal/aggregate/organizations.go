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

// OrganizationDetail is the organization page: the record, its top
// authors as upstream sent them, and either a paginated works listing
// or the record's own recent works when the listing is unavailable.
type OrganizationDetail struct {
	Organization types.NormalizedOrganization `json:"organization" yaml:"organization"`
	Works        []types.NormalizedWork       `json:"works" yaml:"works"`
	Pagination   types.PaginationInfo         `json:"pagination" yaml:"pagination"`
	TopAuthors   json.RawMessage              `json:"top_authors,omitempty" yaml:"-"`

	// ShowingRecent marks that Works came from the record's embedded
	// recent_works block rather than the live listing.
	ShowingRecent bool `json:"showing_recent,omitempty" yaml:"showing_recent,omitempty"`
}

// BuildOrganizationDetail assembles the organization page. A failed
// works listing falls back to the recent works embedded in the record.
func BuildOrganizationDetail(ctx context.Context, f Fetcher, orgID string, page int, log zerolog.Logger) (OrganizationDetail, bool) {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/organizations/"+orgID, nil))
	if !ok || !env.HasData() {
		return OrganizationDetail{}, false
	}
	var raw normalize.RawOrganization
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return OrganizationDetail{}, false
	}
	org, ok := normalize.Organization(raw)
	if !ok {
		return OrganizationDetail{}, false
	}

	if page < 1 {
		page = 1
	}
	res := OrganizationDetail{Organization: org, TopAuthors: raw.TopAuthors}

	worksEnv, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/organizations/"+orgID+"/works",
		upstream.Params{"page": page, "limit": listingLimit}))
	if ok {
		if raws, ok := decodeWorks(worksEnv); ok {
			res.Works = lenientWorks(raws)
		}
		res.Pagination = normalize.Pagination(worksEnv.Pagination, page, listingLimit, len(res.Works))
		return res, true
	}

	log.Warn().Str("org_id", orgID).Msg("organization works unavailable, showing recent works")
	res.Works = lenientWorks(raw.RecentWorks)
	res.ShowingRecent = true
	total := len(res.Works)
	if raw.Metrics != nil && raw.Metrics.WorksCount > 0 {
		total = raw.Metrics.WorksCount
	}
	res.Pagination = normalize.PaginationFromTotal(page, listingLimit, total)
	return res, true
}

// OrganizationListing is one page of the complete organizations catalog.
type OrganizationListing struct {
	Organizations []types.NormalizedOrganization `json:"organizations" yaml:"organizations"`
	Pagination    types.PaginationInfo           `json:"pagination" yaml:"pagination"`
}

// BuildOrganizationListing pages through /organizations, dropping
// records without a usable name.
func BuildOrganizationListing(ctx context.Context, f Fetcher, page int, log zerolog.Logger) (OrganizationListing, bool) {
	if page < 1 {
		page = 1
	}
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/organizations",
		upstream.Params{"page": page, "limit": listingLimit}))
	if !ok {
		log.Warn().Msg("organizations listing unavailable")
		return OrganizationListing{}, false
	}
	items, ok := env.List()
	if !ok {
		return OrganizationListing{}, false
	}

	var res OrganizationListing
	for _, raw := range normalize.DecodeList[normalize.RawOrganization](items) {
		if o, ok := normalize.Organization(raw); ok {
			res.Organizations = append(res.Organizations, o)
		}
	}
	res.Pagination = normalize.Pagination(env.Pagination, page, listingLimit, len(res.Organizations))
	return res, true
}
