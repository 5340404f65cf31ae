// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

const (
	referencesCap    = 4
	similarWorksCap  = 4
	similarPool      = 5
	similarTermWords = 3
)

// WorkDetail is the assembled work page: the enriched record, the
// distinct author affiliations, best-effort metrics, and either the
// work's own references or title-similar works when it has none.
type WorkDetail struct {
	Work         types.NormalizedWork   `json:"work" yaml:"work"`
	Affiliations []string               `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Metrics      map[string]any         `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	References   []types.NormalizedWork `json:"references,omitempty" yaml:"references,omitempty"`
	Similar      []types.NormalizedWork `json:"similar,omitempty" yaml:"similar,omitempty"`
}

// Related returns the reference list when present, otherwise the
// similar works that substituted for it.
func (d WorkDetail) Related() []types.NormalizedWork {
	if len(d.References) > 0 {
		return d.References
	}
	return d.Similar
}

// BuildWorkDetail assembles the work page. Only the base record is
// required; metrics, references, and similar works are best effort.
func BuildWorkDetail(ctx context.Context, f Fetcher, id string, log zerolog.Logger) (WorkDetail, bool) {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/works/"+id, nil))
	if !ok || !env.HasData() {
		return WorkDetail{}, false
	}
	var raw normalize.RawWork
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return WorkDetail{}, false
	}
	work, ok := normalize.CatalogWork(raw)
	if !ok {
		return WorkDetail{}, false
	}

	d := WorkDetail{
		Work:         work,
		Affiliations: affiliations(work.Authors),
		Metrics:      workMetrics(ctx, f, id, log),
		References:   workReferences(ctx, f, id, log),
	}
	if len(d.References) == 0 {
		d.Similar = similarWorks(ctx, f, work, log)
	}
	return d, true
}

// affiliations collects the distinct author affiliation names in
// appearance order.
func affiliations(authors []types.Author) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range authors {
		if a.Affiliation == "" || seen[a.Affiliation] {
			continue
		}
		seen[a.Affiliation] = true
		out = append(out, a.Affiliation)
	}
	return out
}

func workMetrics(ctx context.Context, f Fetcher, id string, log zerolog.Logger) map[string]any {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/works/"+id+"/metrics", nil))
	if !ok || !env.HasData() {
		log.Debug().Str("work_id", id).Msg("work metrics unavailable")
		return nil
	}
	var metrics map[string]any
	if err := json.Unmarshal(env.Data, &metrics); err != nil {
		return nil
	}
	return metrics
}

// rawReference is one entry of the referenced_works block.
type rawReference struct {
	CitedWorkID normalize.FlexID `json:"cited_work_id"`
	Title       string           `json:"title"`
	Year        int              `json:"year"`
	Type        string           `json:"type"`
}

func workReferences(ctx context.Context, f Fetcher, id string, log zerolog.Logger) []types.NormalizedWork {
	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/works/"+id+"/references", nil))
	if !ok || !env.HasData() {
		log.Debug().Str("work_id", id).Msg("work references unavailable")
		return nil
	}
	var data struct {
		ReferencedWorks []rawReference `json:"referenced_works"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil
	}

	refs := data.ReferencedWorks
	if len(refs) > referencesCap {
		refs = refs[:referencesCap]
	}
	out := make([]types.NormalizedWork, 0, len(refs))
	for _, ref := range refs {
		title := ref.Title
		if title == "" {
			title = normalize.LabelUntitled
		}
		typ := ref.Type
		if typ == "" {
			typ = "ARTICLE"
		}
		out = append(out, types.NormalizedWork{
			ID:          string(ref.CitedWorkID),
			Title:       title,
			Year:        ref.Year,
			DisplayYear: normalize.DisplayYear(ref.Year),
			WorkType:    strings.ToLower(typ),
		})
	}
	return out
}

// similarWorks searches the works backend with the first words of the
// title, excluding the work itself.
func similarWorks(ctx context.Context, f Fetcher, work types.NormalizedWork, log zerolog.Logger) []types.NormalizedWork {
	words := strings.Fields(work.Title)
	if len(words) == 0 {
		return nil
	}
	if len(words) > similarTermWords {
		words = words[:similarTermWords]
	}

	env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/search/works", upstream.Params{
		"q": strings.Join(words, " "), "limit": similarPool,
	}))
	if !ok {
		log.Debug().Str("work_id", work.ID).Msg("similar works unavailable")
		return nil
	}
	raws, ok := decodeWorks(env)
	if !ok {
		return nil
	}

	var out []types.NormalizedWork
	for _, raw := range raws {
		if string(raw.ID) == work.ID {
			continue
		}
		if w, ok := normalize.CatalogWork(raw); ok {
			out = append(out, w)
		}
		if len(out) == similarWorksCap {
			break
		}
	}
	return out
}

// maxBatchIDs caps one batch request.
const maxBatchIDs = 100

var (
	errNoIDs      = errors.New("no work ids provided")
	errTooManyIDs = errors.New("too many work ids requested (max 100)")
)

// BatchWorks resolves up to 100 works by id, skipping ids that cannot
// be fetched. The order of the returned records follows the input.
func BatchWorks(ctx context.Context, f Fetcher, ids []string, log zerolog.Logger) ([]types.NormalizedWork, error) {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return nil, errNoIDs
	}
	if len(clean) > maxBatchIDs {
		return nil, errTooManyIDs
	}

	out := make([]types.NormalizedWork, 0, len(clean))
	for _, id := range clean {
		env, ok := fetchEnvelope(ctx, f, upstream.NewRequest("/works/"+id, nil))
		if !ok || !env.HasData() {
			log.Debug().Str("work_id", id).Msg("batch item skipped")
			continue
		}
		var raw normalize.RawWork
		if err := json.Unmarshal(env.Data, &raw); err != nil {
			continue
		}
		out = append(out, normalize.LenientWork(raw))
	}
	return out, nil
}
