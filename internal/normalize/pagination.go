// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// RawPagination is a pagination block as upstream endpoints send it.
// At least three shapes occur in the wild: a full block, a block with
// hasNext but no totalPages, and no block at all (single page).
type RawPagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Pages      int   `json:"pages"`
	HasNext    *bool `json:"hasNext"`
	Total      int   `json:"total"`
	Limit      int   `json:"limit"`
}

// Pagination derives the canonical shape from whatever the upstream
// provided. page and limit are the values the caller requested;
// fallbackTotal (typically the page's record count) is used when the
// block carries no total.
//
// The result always satisfies the canonical invariants:
// TotalPages == ceil(Total/Limit) when Total > 0, HasNext ==
// Page < TotalPages, HasPrev == Page > 1. Without a total, TotalPages
// falls back to the block's own totalPages or pages count (the
// full-text engine's alias), extended by one when the block claims a
// next page beyond it. Re-normalizing an already-canonical block is
// therefore a no-op.
func Pagination(raw *RawPagination, page, limit, fallbackTotal int) types.PaginationInfo {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := fallbackTotal
	if raw != nil {
		if raw.Total > 0 {
			total = raw.Total
		}
		if raw.Limit > 0 {
			limit = raw.Limit
		}
		if raw.Page > 0 {
			page = raw.Page
		}
	}

	totalPages := 1
	switch {
	case total > 0:
		totalPages = (total + limit - 1) / limit
	case raw != nil && raw.TotalPages > 0:
		totalPages = raw.TotalPages
	case raw != nil && raw.Pages > 0:
		// The full-text engine emits "pages" instead of "totalPages".
		totalPages = raw.Pages
	}
	if total == 0 && raw != nil && raw.HasNext != nil && *raw.HasNext && totalPages <= page {
		totalPages = page + 1
	}

	return types.PaginationInfo{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Total:      total,
	}
}

// PaginationFromTotal builds the canonical shape when the upstream sent
// no block at all but the total is known from elsewhere (e.g. a venue's
// works_count).
func PaginationFromTotal(page, limit, total int) types.PaginationInfo {
	return Pagination(nil, page, limit, total)
}
