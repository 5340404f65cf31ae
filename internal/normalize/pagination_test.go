// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/catalog-gateway/pkg/types"
)

func boolp(b bool) *bool { return &b }

func TestPaginationFromExplicitBlock(t *testing.T) {
	raw := &RawPagination{Page: 2, TotalPages: 9, Total: 215, Limit: 25,
		HasNext: boolp(true)}

	got := Pagination(raw, 2, 25, 0)

	assert.Equal(t, types.PaginationInfo{
		Page: 2, TotalPages: 9, HasPrev: true, HasNext: true, Total: 215,
	}, got)
}

func TestPaginationHasNextWithoutTotalPages(t *testing.T) {
	// The full-text engine sends hasNext but no totalPages; the total
	// pages count is derived from total and limit.
	raw := &RawPagination{Page: 1, Total: 55, Limit: 20, HasNext: boolp(true)}

	got := Pagination(raw, 1, 20, 0)

	assert.Equal(t, 3, got.TotalPages)
	assert.True(t, got.HasNext)
	assert.False(t, got.HasPrev)
}

func TestPaginationHonorsPageCountsWithoutTotal(t *testing.T) {
	tests := []struct {
		name      string
		raw       *RawPagination
		page      int
		wantPages int
	}{
		{"totalPages stands alone", &RawPagination{Page: 2, TotalPages: 7}, 2, 7},
		{"pages is an alias for totalPages", &RawPagination{Page: 1, Pages: 4}, 1, 4},
		{"totalPages wins over pages", &RawPagination{TotalPages: 7, Pages: 4}, 1, 7},
		{"hasNext extends past a stale count", &RawPagination{Page: 3, Pages: 3, HasNext: boolp(true)}, 3, 4},
		{"total overrides both aliases", &RawPagination{Total: 55, Limit: 20, Pages: 9, TotalPages: 9}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pagination(tt.raw, tt.page, 20, 0)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, got.HasNext, got.Page < got.TotalPages)
		})
	}
}

func TestPaginationAbsentBlockMeansSinglePage(t *testing.T) {
	got := Pagination(nil, 1, 25, 18)

	assert.Equal(t, types.PaginationInfo{
		Page: 1, TotalPages: 1, HasPrev: false, HasNext: false, Total: 18,
	}, got)
}

func TestPaginationInvariants(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page        int
		limit       int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"exact division", 100, 1, 25, 4, true, false},
		{"remainder rounds up", 101, 4, 25, 5, true, true},
		{"last page", 101, 5, 25, 5, false, true},
		{"zero total is one page", 0, 1, 25, 1, false, false},
		{"single result", 1, 1, 25, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pagination(&RawPagination{Total: tt.total}, tt.page, tt.limit, 0)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, tt.wantHasNext, got.HasNext)
			assert.Equal(t, tt.wantHasPrev, got.HasPrev)
			assert.Equal(t, got.HasNext, got.Page < got.TotalPages)
			assert.Equal(t, got.HasPrev, got.Page > 1)
		})
	}
}

func TestPaginationIsIdempotent(t *testing.T) {
	first := Pagination(&RawPagination{Page: 3, Total: 215, Limit: 25}, 3, 25, 0)

	// Feed the canonical result back through normalization.
	again := Pagination(&RawPagination{
		Page:       first.Page,
		TotalPages: first.TotalPages,
		Total:      first.Total,
		HasNext:    boolp(first.HasNext),
	}, first.Page, 25, 0)

	assert.Equal(t, first, again)
}
