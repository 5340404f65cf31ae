// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoisyVenueName(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		noisy bool
	}{
		{"normal journal", "Revista de Antropologia", false},
		{"too short", "Aei", true},
		{"empty", "", true},
		{"year-prefixed artifact", "2020 Proceedings Dump", true},
		{"book title noise", "A History of Melanesian Ethnography", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.noisy, NoisyVenueName(tt.venue))
		})
	}
}

func TestNoisyOrganizationName(t *testing.T) {
	tests := []struct {
		name  string
		org   string
		noisy bool
	}{
		{"university", "Universidade de São Paulo", false},
		{"leading comma", ", Faculty of Arts", true},
		{"leading period", ". Anthropology Dept", true},
		{"leading quote", `"Quoted Institute"`, true},
		{"too short", "USP", true},
		{"publisher noise", "Cambridge University Press", true},
		{"denylisted department", "Department of Human Development and Family", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.noisy, NoisyOrganizationName(tt.org))
		})
	}
}

func TestVenueDefaults(t *testing.T) {
	v, ok := Venue(RawVenue{ID: "9", Name: "Mana"})
	require.True(t, ok)
	assert.Equal(t, "JOURNAL", v.Type)
	assert.Equal(t, LabelNotInformed, v.PublisherName)

	_, ok = Venue(RawVenue{ID: "9", Name: "  "})
	assert.False(t, ok)
}

func TestOrganizationFromMetricsAndLocation(t *testing.T) {
	raw := RawOrganization{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"name": "Museu Nacional",
		"metrics": {"affiliated_authors_count": 120},
		"location": {"country_code": "BR"},
		"identifiers": {"ror_id": "03490as77"}
	}`), &raw))

	o, ok := Organization(raw)
	require.True(t, ok)
	assert.Equal(t, 120, o.PersonsCount)
	assert.Equal(t, "BR", o.Country)
	assert.Equal(t, "03490as77", o.RORID)
	assert.Equal(t, "UNIVERSITY", o.Type)
}

func TestOrganizationRejectsNearEmptyName(t *testing.T) {
	_, ok := Organization(RawOrganization{Name: "X"})
	assert.False(t, ok)

	o, ok := Organization(RawOrganization{Name: "Unknown Place"})
	require.True(t, ok)
	assert.Equal(t, LabelUnknownCountry, o.Country)
}

func TestPersonRequiresPreferredName(t *testing.T) {
	_, ok := Person(RawPerson{ID: "1", Name: "Fallback Only"})
	assert.False(t, ok)

	var raw RawPerson
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 31,
		"preferred_name": "Alcida Ramos",
		"metrics": {"works_count": 44}
	}`), &raw))

	p, ok := Person(raw)
	require.True(t, ok)
	assert.Equal(t, "Alcida Ramos", p.Name)
	assert.Equal(t, 44, p.WorksCount)
	assert.Equal(t, LabelUnknownOrg, p.OrganizationName)
}

func TestEnvelopeListAndObjectForms(t *testing.T) {
	list, err := ParseEnvelope([]byte(`{"data": [{"id": 1}], "pagination": {"total": 40}}`))
	require.NoError(t, err)
	items, ok := list.List()
	require.True(t, ok)
	assert.Len(t, items, 1)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 40, list.Pagination.Total)

	obj, err := ParseEnvelope([]byte(`{"data": {"results": [{"id": 1}, {"id": 2}], "total": 2}}`))
	require.NoError(t, err)
	_, ok = obj.List()
	assert.False(t, ok)
	d, ok := obj.Object()
	require.True(t, ok)
	assert.Len(t, d.Results, 2)
	assert.Equal(t, 2, d.Total)
}

func TestEnvelopeErrorAndEmptyStates(t *testing.T) {
	e, err := ParseEnvelope([]byte(`{"status": "error"}`))
	require.NoError(t, err)
	assert.True(t, e.IsError())
	assert.False(t, e.HasData())

	e, err = ParseEnvelope([]byte(`{"data": []}`))
	require.NoError(t, err)
	assert.False(t, e.IsError())
	assert.False(t, e.HasData())

	e, err = ParseEnvelope([]byte(`{"data": [1]}`))
	require.NoError(t, err)
	assert.True(t, e.HasData())
}
