package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 25
	// MaxPageSize caps how many rows any list query can request.
	MaxPageSize = 100
)

// Params holds page-based pagination inputs from controllers or services.
// Pages are 1-indexed.
type Params struct {
	Page     int
	PageSize int
}

// Page describes one page of results alongside the full result count.
type Page struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"hasNext"`
	HasPrev  bool  `json:"hasPrev"`
}

// Normalize clamps the params to sane bounds: page floors at 1 and the
// page size is bounded by DefaultPageSize and MaxPageSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	normalized := p.Normalize()
	return (normalized.Page - 1) * normalized.PageSize
}

// Build computes the page envelope for a result set of the given total.
// A next page exists exactly when page*pageSize is still below total, so
// requesting past the end yields an empty page with HasNext false.
func Build(params Params, total int64) Page {
	normalized := params.Normalize()
	return Page{
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
		Total:    total,
		HasNext:  int64(normalized.Page)*int64(normalized.PageSize) < total,
		HasPrev:  normalized.Page > 1,
	}
}
