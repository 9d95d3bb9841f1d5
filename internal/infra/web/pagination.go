package web

import (
	"math"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
)

// DefaultPerPage applies when the caller sends no per_page.
const DefaultPerPage = 50

// PageRequest is an offset pagination request. Page is 1-based.
type PageRequest struct {
	Page    int
	PerPage int
}

func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return apperr.Validation("page must be at least 1")
	}
	if p.PerPage < 1 {
		return apperr.Validation("per_page must be at least 1")
	}
	// Offset is bound as an integer query argument and must not wrap.
	if p.Page-1 > math.MaxInt32/p.PerPage {
		return apperr.Validation("page is too large")
	}
	return nil
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

func (p PageRequest) Limit() int { return p.PerPage }

// Pagination is the metadata returned next to a page of results.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"pages"`
	PerPage    int  `json:"per_page"`
	TotalCount int  `json:"total"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination derives the metadata for page p of total rows.
func NewPagination(p PageRequest, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return Pagination{
		Page:       p.Page,
		TotalPages: pages,
		PerPage:    p.PerPage,
		TotalCount: total,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
