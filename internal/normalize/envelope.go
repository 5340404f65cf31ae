// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize reconciles the inconsistent upstream schemas into
// canonical display records. Everything here is a pure transformation:
// no network, no shared state.
package normalize

import (
	"github.com/goccy/go-json"
)

// Envelope is the common upstream response wrapper
// {"data": ..., "pagination": {...}?}. The data member is either a list
// of records or, for the full-text engine, an object shaped
// {"results": [...], "total": N, "meta": {...}}. Both forms must be
// tolerated.
type Envelope struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Pagination *RawPagination  `json:"pagination"`
	Meta       map[string]any  `json:"meta"`
	Total      int             `json:"total"`
}

// EngineData is the object-valued data form used by the full-text
// search engine.
type EngineData struct {
	Results []json.RawMessage `json:"results"`
	Total   int               `json:"total"`
	Meta    map[string]any    `json:"meta"`
}

// ParseEnvelope decodes an upstream payload.
func ParseEnvelope(payload []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(payload, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// IsError reports whether the upstream flagged the response as an error
// despite the 200 status.
func (e Envelope) IsError() bool { return e.Status == "error" }

// HasData reports whether the data member is present and non-trivial.
func (e Envelope) HasData() bool {
	switch string(e.Data) {
	case "", "null", "[]", "{}":
		return false
	}
	return true
}

// List returns the data member as a record list. The second return is
// false when data is absent or object-valued.
func (e Envelope) List() ([]json.RawMessage, bool) {
	if len(e.Data) == 0 || e.Data[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(e.Data, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Object returns the data member in the full-text engine form. The
// second return is false when data is absent or list-valued.
func (e Envelope) Object() (EngineData, bool) {
	if len(e.Data) == 0 || e.Data[0] != '{' {
		return EngineData{}, false
	}
	var d EngineData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return EngineData{}, false
	}
	return d, true
}

// DecodeList unmarshals each raw list item into T, dropping items that
// fail to decode rather than rejecting the whole page.
func DecodeList[T any](items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
