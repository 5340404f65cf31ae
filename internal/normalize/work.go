// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Display fallbacks shown when a field cannot be resolved. The product
// surface is Portuguese.
const (
	LabelUnknownAuthor  = "Autor não informado"
	LabelUnknownYear    = "S/D"
	LabelNotInformed    = "Não informado"
	LabelUnknownOrg     = "Instituição não informada"
	LabelUnknownCountry = "País não informado"
	LabelUntitled       = "Título não disponível"
	LabelDefaultType    = "Artigo"
)

// minAbstractLen is the abstract length below which the abstract signal
// does not count.
const minAbstractLen = 50

// minQualitySignals is how many of the five completeness signals a work
// needs to pass the quality gate.
const minQualitySignals = 3

// FlexID is an identifier that upstream encodes either as a JSON number
// or as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	*f = FlexID(s)
	return nil
}

// AuthorList converges the three upstream author representations into an
// ordered []types.Author:
//
//   - a list of objects with a name field (and optional role/orcid/...)
//   - a list of plain name strings
//   - an object {"author_string": "A; B;"} whose value is split on ";"
//     with blank segments dropped
type AuthorList []types.Author

func (al *AuthorList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*al = nil
		return nil
	}

	switch s[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make(AuthorList, 0, len(items))
		for _, raw := range items {
			if a, ok := decodeAuthor(raw); ok {
				out = append(out, a)
			}
		}
		*al = out
		return nil

	case '{':
		var obj struct {
			AuthorString string `json:"author_string"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*al = SplitAuthorString(obj.AuthorString)
		return nil
	}

	*al = nil
	return nil
}

func decodeAuthor(raw json.RawMessage) (types.Author, bool) {
	t := strings.TrimSpace(string(raw))
	if t == "" || t == "null" {
		return types.Author{}, false
	}

	if t[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return types.Author{}, false
		}
		name = strings.TrimSpace(name)
		return types.Author{Name: name}, name != ""
	}

	var obj struct {
		Name        string          `json:"name"`
		Role        string          `json:"role"`
		ORCID       string          `json:"orcid"`
		PersonID    FlexID          `json:"person_id"`
		Affiliation json.RawMessage `json:"affiliation"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return types.Author{}, false
	}
	a := types.Author{
		Name:     strings.TrimSpace(obj.Name),
		Role:     obj.Role,
		ORCID:    obj.ORCID,
		PersonID: string(obj.PersonID),
	}
	a.Affiliation = affiliationName(obj.Affiliation)
	return a, a.Name != ""
}

// affiliationName accepts both a bare string and an object with a name.
func affiliationName(raw json.RawMessage) string {
	t := strings.TrimSpace(string(raw))
	if t == "" || t == "null" {
		return ""
	}
	if t[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
		return ""
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return strings.TrimSpace(obj.Name)
	}
	return ""
}

// SplitAuthorString splits a semicolon-delimited author string, trimming
// each segment and dropping empty ones (a trailing ";" is common).
func SplitAuthorString(s string) AuthorList {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out AuthorList
	for _, part := range strings.Split(s, ";") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, types.Author{Name: name})
		}
	}
	return out
}

// RawPublication is the optional nested publication block.
type RawPublication struct {
	Year int    `json:"year"`
	DOI  string `json:"doi"`
}

// RawWork is a work record as the upstream sends it, with every shape
// variant the endpoints are known to produce.
type RawWork struct {
	ID              FlexID          `json:"id"`
	Title           string          `json:"title"`
	Abstract        string          `json:"abstract"`
	DOI             string          `json:"doi"`
	TempDOI         string          `json:"temp_doi"`
	PublicationYear int             `json:"publication_year"`
	Year            int             `json:"year"`
	Publication     *RawPublication `json:"publication"`
	Authors         AuthorList      `json:"authors"`
	AuthorCount     int             `json:"author_count"`
	AuthorsPreview  []string        `json:"authors_preview"`
	WorkType        string          `json:"work_type"`
	Type            string          `json:"type"`
	Language        string          `json:"language"`
	Venue           *RawVenueRef    `json:"venue"`
	QualityScore    int             `json:"quality_score"`
}

// RawVenueRef is the nested venue reference on a work.
type RawVenueRef struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// ResolvedYear picks the publication year from whichever field was
// populated.
func (w RawWork) ResolvedYear() int {
	switch {
	case w.PublicationYear > 0:
		return w.PublicationYear
	case w.Year > 0:
		return w.Year
	case w.Publication != nil && w.Publication.Year > 0:
		return w.Publication.Year
	}
	return 0
}

// ResolvedDOI picks the identifier from doi, temp_doi, or the nested
// publication block, in that order.
func (w RawWork) ResolvedDOI() string {
	switch {
	case w.DOI != "":
		return w.DOI
	case w.TempDOI != "":
		return w.TempDOI
	case w.Publication != nil && w.Publication.DOI != "":
		return w.Publication.DOI
	}
	return ""
}

// ResolvedType picks work_type over type.
func (w RawWork) ResolvedType() string {
	if w.WorkType != "" {
		return w.WorkType
	}
	return w.Type
}

// Score counts the completeness signals present on the record: non-empty
// title, at least one author (explicit list or positive count), an
// abstract longer than 50 characters, a resolvable year, and a
// resolvable identifier.
func Score(w RawWork) int {
	score := 0
	if strings.TrimSpace(w.Title) != "" {
		score++
	}
	if len(w.Authors) > 0 || w.AuthorCount > 0 {
		score++
	}
	if len(strings.TrimSpace(w.Abstract)) > minAbstractLen {
		score++
	}
	if w.ResolvedYear() > 0 {
		score++
	}
	if w.ResolvedDOI() != "" {
		score++
	}
	return score
}

// Work normalizes a raw record, rejecting it unless at least 3 of the 5
// quality signals are present. Accepted records carry the signal count
// as their quality score.
func Work(raw RawWork) (types.NormalizedWork, bool) {
	score := Score(raw)
	if score < minQualitySignals {
		return types.NormalizedWork{}, false
	}
	w := convertWork(raw)
	w.QualityScore = score
	return w, true
}

// CatalogWork normalizes a raw record for plain catalog listings, where
// only a non-empty title is required. The quality score is still
// computed for observability but does not gate the record.
func CatalogWork(raw RawWork) (types.NormalizedWork, bool) {
	if strings.TrimSpace(raw.Title) == "" {
		return types.NormalizedWork{}, false
	}
	w := convertWork(raw)
	w.QualityScore = Score(raw)
	return w, true
}

// LenientWork normalizes a raw record unconditionally, substituting the
// untitled label when the title is missing. Listing pages scoped to a
// person or an organization show every work on record.
func LenientWork(raw RawWork) types.NormalizedWork {
	w := convertWork(raw)
	if w.Title == "" {
		w.Title = LabelUntitled
	}
	w.QualityScore = Score(raw)
	return w
}

// QualityFilter normalizes a page of raw records, keeping only those
// that pass the quality gate.
func QualityFilter(raws []RawWork) []types.NormalizedWork {
	out := make([]types.NormalizedWork, 0, len(raws))
	for _, raw := range raws {
		if w, ok := Work(raw); ok {
			out = append(out, w)
		}
	}
	return out
}

func convertWork(raw RawWork) types.NormalizedWork {
	w := types.NormalizedWork{
		ID:       string(raw.ID),
		Title:    strings.TrimSpace(raw.Title),
		Authors:  raw.Authors,
		Year:     raw.ResolvedYear(),
		Abstract: strings.TrimSpace(raw.Abstract),
		DOI:      raw.ResolvedDOI(),
		WorkType: raw.ResolvedType(),
		Language: raw.Language,
	}
	if raw.Venue != nil && (raw.Venue.ID != "" || raw.Venue.Name != "") {
		w.Venue = &types.VenueRef{ID: string(raw.Venue.ID), Name: raw.Venue.Name}
	}
	w.DisplayYear = DisplayYear(w.Year)
	w.DOIURL = DOIURL(w.DOI)
	w.FormattedType = FormatWorkType(w.WorkType)
	w.FormattedAuthors = FormatAuthors(authorNames(w.Authors), 3, raw.AuthorCount)
	return w
}

func authorNames(authors []types.Author) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// DisplayYear renders a year for display, "S/D" (sem data) when unknown.
func DisplayYear(year int) string {
	if year <= 0 {
		return LabelUnknownYear
	}
	return strconv.Itoa(year)
}

// DOIURL builds a resolver URL for proper DOIs; temporary identifiers
// that do not start with "10." get no link.
func DOIURL(doi string) string {
	if strings.HasPrefix(doi, "10.") {
		return "https://doi.org/" + doi
	}
	return ""
}

// FormatWorkType turns an upstream type code like "BOOK_CHAPTER" into a
// display label, defaulting to "Artigo".
func FormatWorkType(code string) string {
	if code == "" {
		return LabelDefaultType
	}
	words := strings.Fields(strings.ReplaceAll(code, "_", " "))
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// FormatAuthors joins up to max names with an "et al." suffix when the
// record has more contributors than shown. An empty list yields the
// unknown-author label.
func FormatAuthors(names []string, max, totalCount int) string {
	if len(names) == 0 {
		return LabelUnknownAuthor
	}
	shown := names
	if len(shown) > max {
		shown = shown[:max]
	}
	s := strings.Join(shown, ", ")
	if totalCount > max || len(names) > max {
		s += " et al."
	}
	return s
}

// MergeDetail overlays the richer fields of a detail record onto a
// summary record. Empty detail fields never erase summary data, and the
// summary's quality score is kept: the score was computed on the page
// the user saw.
func MergeDetail(summary, detail types.NormalizedWork) types.NormalizedWork {
	merged := summary
	if detail.Title != "" {
		merged.Title = detail.Title
	}
	if len(detail.Authors) > 0 {
		merged.Authors = detail.Authors
		merged.FormattedAuthors = detail.FormattedAuthors
	}
	if detail.Year > 0 {
		merged.Year = detail.Year
		merged.DisplayYear = detail.DisplayYear
	}
	if detail.Abstract != "" {
		merged.Abstract = detail.Abstract
	}
	if detail.DOI != "" {
		merged.DOI = detail.DOI
		merged.DOIURL = detail.DOIURL
	}
	if detail.WorkType != "" {
		merged.WorkType = detail.WorkType
		merged.FormattedType = detail.FormattedType
	}
	if detail.Language != "" {
		merged.Language = detail.Language
	}
	if detail.Venue != nil {
		merged.Venue = detail.Venue
	}
	return merged
}
