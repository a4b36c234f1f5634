package repository

// Paging bounds applied to every listing.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries pagination and optional search input for a listing.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// Normalize clamps paging values: page and limit fall back to defaults when
// out of range, and limit is capped so a single request cannot drain a table.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes page metadata for a total row count. params must be
// normalized first.
func NewPagination(params ListParams, total int64) Pagination {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return Pagination{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
