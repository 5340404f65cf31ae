// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// PersonWorks is the works listing scoped to one person.
type PersonWorks struct {
	Person     types.NormalizedPerson `json:"person" yaml:"person"`
	Works      []types.NormalizedWork `json:"works" yaml:"works"`
	Pagination types.PaginationInfo   `json:"pagination" yaml:"pagination"`
}

// BuildPersonWorks assembles the works page of a person. The person
// record is required; a failed works call yields the person with an
// empty listing.
func BuildPersonWorks(ctx context.Context, f Fetcher, personID string, page int, log zerolog.Logger) (PersonWorks, bool) {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/persons/"+personID, nil))
	if !ok || !env.HasData() {
		return PersonWorks{}, false
	}
	var rawPerson normalize.RawPerson
	if err := json.Unmarshal(env.Data, &rawPerson); err != nil {
		return PersonWorks{}, false
	}

	res := PersonWorks{
		Person: types.NormalizedPerson{
			ID:               string(rawPerson.ID),
			Name:             rawPerson.DisplayName(),
			OrganizationName: normalize.LabelUnknownOrg,
		},
	}
	if rawPerson.Metrics != nil {
		res.Person.WorksCount = rawPerson.Metrics.WorksCount
	}

	if page < 1 {
		page = 1
	}
	worksEnv, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/persons/"+personID+"/works",
		upstream.Params{"page": page, "limit": listingLimit}))
	if !ok {
		log.Warn().Str("person_id", personID).Msg("person works unavailable")
		res.Pagination = normalize.PaginationFromTotal(page, listingLimit, 0)
		return res, true
	}

	if raws, ok := decodeWorks(worksEnv); ok {
		res.Works = lenientWorks(raws)
	}
	res.Pagination = normalize.Pagination(worksEnv.Pagination, page, listingLimit, len(res.Works))
	return res, true
}

// SignatureWorks is the works listing scoped to one author signature.
type SignatureWorks struct {
	SignatureID   string                 `json:"signature_id" yaml:"signature_id"`
	SignatureName string                 `json:"signature_name" yaml:"signature_name"`
	Works         []types.NormalizedWork `json:"works" yaml:"works"`
	Pagination    types.PaginationInfo   `json:"pagination" yaml:"pagination"`
}

// BuildSignatureWorks assembles the works page of a signature, falling
// back twice: a failed signature-works call retries as a quoted-name
// search, and when the signature record itself cannot be resolved the
// id is tried as a person id instead.
func BuildSignatureWorks(ctx context.Context, f Fetcher, signatureID string, page int, log zerolog.Logger) (SignatureWorks, bool) {
	if page < 1 {
		page = 1
	}

	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/signatures/"+signatureID, nil))
	if !ok || !env.HasData() {
		return signatureWorksViaPerson(ctx, f, signatureID, page, log)
	}
	var sig struct {
		Signature string `json:"signature"`
	}
	if err := json.Unmarshal(env.Data, &sig); err != nil {
		return SignatureWorks{}, false
	}
	name := sig.Signature
	if name == "" {
		name = "Signature " + signatureID
	}

	res := SignatureWorks{SignatureID: signatureID, SignatureName: name}

	worksEnv, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/signatures/"+signatureID+"/works", nil))
	if !ok {
		log.Warn().Str("signature_id", signatureID).Msg("signature works unavailable, searching quoted name")
		worksEnv, ok = fetchEnvelope(ctx, f, upstream.NewRequest("/search/works", upstream.Params{
			"q": strconv.Quote(name), "limit": listingLimit, "page": page,
		}))
	}
	if !ok {
		res.Pagination = normalize.PaginationFromTotal(page, listingLimit, 0)
		return res, true
	}

	if raws, ok := decodeWorks(worksEnv); ok {
		res.Works = lenientWorks(raws)
	}
	total := worksEnv.Total
	if total == 0 {
		total = len(res.Works)
	}
	res.Pagination = normalize.Pagination(worksEnv.Pagination, page, listingLimit, total)
	return res, true
}

// signatureWorksViaPerson is the last fallback: the signature id is
// treated as a person id.
func signatureWorksViaPerson(ctx context.Context, f Fetcher, signatureID string, page int, log zerolog.Logger) (SignatureWorks, bool) {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/persons/"+signatureID+"/works",
		upstream.Params{"page": page, "limit": listingLimit}))
	if !ok {
		return SignatureWorks{}, false
	}
	log.Debug().Str("signature_id", signatureID).Msg("signature resolved through person works")

	res := SignatureWorks{
		SignatureID:   signatureID,
		SignatureName: "Signature " + signatureID,
	}
	if raws, ok := decodeWorks(env); ok {
		res.Works = lenientWorks(raws)
	}
	res.Pagination = normalize.Pagination(env.Pagination, page, listingLimit, len(res.Works))
	return res, true
}
