// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Known noise in the venue and organization catalogs: OCR artifacts and
// misfiled records that would otherwise surface on curated listings.
// A heuristic denylist, not a general solution.
var (
	venueNoiseSubstrings = []string{"A History of"}

	orgNoiseSubstrings = []string{
		"Department of Human Development",
		"Te Puna Wānanga",
		"Press",
	}
)

// NoisyVenueName reports whether a venue name is near-empty or matches
// the known noise patterns.
func NoisyVenueName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) <= 3 {
		return true
	}
	if strings.HasPrefix(name, "2020") {
		return true
	}
	for _, s := range venueNoiseSubstrings {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// NoisyOrganizationName reports whether an organization name is
// near-empty, starts with non-informative punctuation, or matches the
// known noise patterns.
func NoisyOrganizationName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) <= 5 {
		return true
	}
	switch name[0] {
	case ',', '.', '"':
		return true
	}
	for _, s := range orgNoiseSubstrings {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// RawVenue is a venue record as the /venues endpoints send it.
type RawVenue struct {
	ID            FlexID `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	WorksCount    int    `json:"works_count"`
	PublisherName string `json:"publisher_name"`
	ISSN          string `json:"issn"`
	EISSN         string `json:"eissn"`
}

// Venue converts a raw venue, rejecting records without a name.
func Venue(raw RawVenue) (types.NormalizedVenue, bool) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return types.NormalizedVenue{}, false
	}
	v := types.NormalizedVenue{
		ID:            string(raw.ID),
		Name:          name,
		Type:          raw.Type,
		WorksCount:    raw.WorksCount,
		PublisherName: raw.PublisherName,
		ISSN:          raw.ISSN,
		EISSN:         raw.EISSN,
	}
	if v.Type == "" {
		v.Type = "JOURNAL"
	}
	if v.PublisherName == "" {
		v.PublisherName = LabelNotInformed
	}
	return v, true
}

// RawOrganization is an organization record as the /organizations
// endpoints send it.
type RawOrganization struct {
	ID      FlexID `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Country string `json:"country"`
	Metrics *struct {
		AffiliatedAuthorsCount int `json:"affiliated_authors_count"`
		WorksCount             int `json:"works_count"`
	} `json:"metrics"`
	Location *struct {
		CountryCode string `json:"country_code"`
	} `json:"location"`
	Identifiers *struct {
		RORID string `json:"ror_id"`
	} `json:"identifiers"`
	PersonsCount int       `json:"persons_count"`
	RecentWorks  []RawWork `json:"recent_works"`

	// TopAuthors is passed through untouched on detail pages.
	TopAuthors json.RawMessage `json:"top_authors"`
}

// ResearchersCount resolves the affiliated-researcher count from the
// metrics block, falling back to the flat field.
func (o RawOrganization) ResearchersCount() int {
	if o.Metrics != nil && o.Metrics.AffiliatedAuthorsCount > 0 {
		return o.Metrics.AffiliatedAuthorsCount
	}
	return o.PersonsCount
}

// Organization converts a raw organization, rejecting records whose
// name is empty or a single character.
func Organization(raw RawOrganization) (types.NormalizedOrganization, bool) {
	name := strings.TrimSpace(raw.Name)
	if len(name) <= 1 {
		return types.NormalizedOrganization{}, false
	}
	o := types.NormalizedOrganization{
		ID:           string(raw.ID),
		Name:         name,
		Type:         raw.Type,
		Country:      raw.Country,
		PersonsCount: raw.ResearchersCount(),
	}
	if o.Type == "" {
		o.Type = "UNIVERSITY"
	}
	if o.Country == "" {
		if raw.Location != nil && raw.Location.CountryCode != "" {
			o.Country = raw.Location.CountryCode
		} else {
			o.Country = LabelUnknownCountry
		}
	}
	if raw.Identifiers != nil {
		o.RORID = raw.Identifiers.RORID
	}
	return o, true
}

// RawPerson is a person record as the /persons endpoints send it.
type RawPerson struct {
	ID            FlexID `json:"id"`
	PreferredName string `json:"preferred_name"`
	Name          string `json:"name"`
	Metrics       *struct {
		WorksCount int `json:"works_count"`
	} `json:"metrics"`
}

// DisplayName resolves preferred_name over name.
func (p RawPerson) DisplayName() string {
	if n := strings.TrimSpace(p.PreferredName); n != "" {
		return n
	}
	return strings.TrimSpace(p.Name)
}

// Person converts a raw person, rejecting records without a preferred
// name.
func Person(raw RawPerson) (types.NormalizedPerson, bool) {
	name := strings.TrimSpace(raw.PreferredName)
	if name == "" {
		return types.NormalizedPerson{}, false
	}
	p := types.NormalizedPerson{
		ID:               string(raw.ID),
		Name:             name,
		OrganizationName: LabelUnknownOrg,
	}
	if raw.Metrics != nil {
		p.WorksCount = raw.Metrics.WorksCount
	}
	return p, true
}
