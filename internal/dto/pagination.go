package dto

// PageParams are the shared pagination/sorting query parameters.
// SortBy uses the `field:asc|desc` format; default ordering is createdAt:desc.
type PageParams struct {
	SortBy string `form:"sortBy"`
	Limit  int    `form:"limit,default=10"`
	Page   int    `form:"page,default=1"`
}

// Normalize clamps page and limit to sane values.
func (p *PageParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Page <= 0 {
		p.Page = 1
	}
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination metadata attached to list responses.
type PageMeta struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// NewPageMeta computes the metadata for a result set of totalResults rows.
func NewPageMeta(page, limit, totalResults int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalResults + limit - 1) / limit
	}
	return PageMeta{
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
}
