// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Author is a single contributor on a work. Upstream represents authors
// three different ways (semicolon-joined string, object list, plain string
// list); all of them converge to this shape.
type Author struct {
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	ORCID       string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	PersonID    string `json:"person_id,omitempty" yaml:"person_id,omitempty"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// VenueRef points at a venue by id without owning it.
type VenueRef struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// NormalizedWork is the canonical display record for a work, unifying the
// upstream schema variants. Records are built fresh per request and never
// mutated after construction.
type NormalizedWork struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title"`
	Authors          []Author  `json:"authors" yaml:"authors"`
	FormattedAuthors string    `json:"formatted_authors,omitempty" yaml:"formatted_authors,omitempty"`
	Year             int       `json:"year,omitempty" yaml:"year,omitempty"`
	DisplayYear      string    `json:"display_year,omitempty" yaml:"display_year,omitempty"`
	Abstract         string    `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	DOI              string    `json:"doi,omitempty" yaml:"doi,omitempty"`
	DOIURL           string    `json:"doi_url,omitempty" yaml:"doi_url,omitempty"`
	WorkType         string    `json:"work_type,omitempty" yaml:"work_type,omitempty"`
	FormattedType    string    `json:"formatted_type,omitempty" yaml:"formatted_type,omitempty"`
	Language         string    `json:"language,omitempty" yaml:"language,omitempty"`
	Venue            *VenueRef `json:"venue,omitempty" yaml:"venue,omitempty"`

	// QualityScore counts the completeness signals (title, authors,
	// abstract, year, identifier) satisfied by the record, 0..5.
	QualityScore int `json:"quality_score" yaml:"quality_score"`
}

// NormalizedPerson is the canonical display record for an author/person.
type NormalizedPerson struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	OrganizationName string `json:"organization_name,omitempty" yaml:"organization_name,omitempty"`
	WorksCount       int    `json:"works_count" yaml:"works_count"`
}

// NormalizedVenue is the canonical display record for a journal or venue.
type NormalizedVenue struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	WorksCount    int    `json:"works_count" yaml:"works_count"`
	PublisherName string `json:"publisher_name,omitempty" yaml:"publisher_name,omitempty"`
	ISSN          string `json:"issn,omitempty" yaml:"issn,omitempty"`
	EISSN         string `json:"eissn,omitempty" yaml:"eissn,omitempty"`
}

// NormalizedOrganization is the canonical display record for an
// institution.
type NormalizedOrganization struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Country      string `json:"country,omitempty" yaml:"country,omitempty"`
	PersonsCount int    `json:"persons_count" yaml:"persons_count"`
	RORID        string `json:"ror_id,omitempty" yaml:"ror_id,omitempty"`
}

// PaginationInfo is the canonical pagination shape derived from the
// upstream variants (explicit pagination block, hasNext without
// totalPages, or no pagination at all).
//
// Invariants: HasNext == (Page < TotalPages), HasPrev == (Page > 1),
// TotalPages == ceil(Total/Limit) when Total > 0.
type PaginationInfo struct {
	Page       int  `json:"page" yaml:"page"`
	TotalPages int  `json:"totalPages" yaml:"total_pages"`
	HasPrev    bool `json:"hasPrev" yaml:"has_prev"`
	HasNext    bool `json:"hasNext" yaml:"has_next"`
	Total      int  `json:"total" yaml:"total"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Text      string `json:"text" yaml:"text"`
	Type      string `json:"type" yaml:"type"`
	Preview   string `json:"preview" yaml:"preview"`
	WorkCount int    `json:"work_count,omitempty" yaml:"work_count,omitempty"`
}

// Course is the canonical record for a PPGAS course.
type Course struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Code              string `json:"code,omitempty" yaml:"code,omitempty"`
	Year              int    `json:"year,omitempty" yaml:"year,omitempty"`
	Semester          string `json:"semester,omitempty" yaml:"semester,omitempty"`
	Credits           int    `json:"credits,omitempty" yaml:"credits,omitempty"`
	InstructorCount   int    `json:"instructor_count,omitempty" yaml:"instructor_count,omitempty"`
	BibliographyCount int    `json:"bibliography_count,omitempty" yaml:"bibliography_count,omitempty"`
}

// Instructor is the canonical record for a PPGAS instructor, merged from
// the person record and the teaching/authorship profile blocks.
type Instructor struct {
	PersonID                string `json:"person_id,omitempty" yaml:"person_id,omitempty"`
	PreferredName           string `json:"preferred_name" yaml:"preferred_name"`
	CoursesTaught           int    `json:"courses_taught" yaml:"courses_taught"`
	BibliographyContributed int    `json:"bibliography_contributed,omitempty" yaml:"bibliography_contributed,omitempty"`
	EarliestYear            int    `json:"earliest_year,omitempty" yaml:"earliest_year,omitempty"`
	LatestYear              int    `json:"latest_year,omitempty" yaml:"latest_year,omitempty"`
	TeachingSpanYears       int    `json:"teaching_span_years,omitempty" yaml:"teaching_span_years,omitempty"`
	WorksAuthored           int    `json:"works_authored,omitempty" yaml:"works_authored,omitempty"`
	UniqueCollaborators     int    `json:"unique_collaborators,omitempty" yaml:"unique_collaborators,omitempty"`
	ProgramsCount           int    `json:"programs_count,omitempty" yaml:"programs_count,omitempty"`
}
