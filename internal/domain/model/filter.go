package model

// Sort keys accepted by the catalog listing endpoint. Unknown keys fall back
// to SortNewest without error.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortYearDesc  = "year_desc"
	SortYearAsc   = "year_asc"
	SortNewest    = "newest"
	SortKmsAsc    = "kms_asc"
)

// Pagination bounds for catalog queries.
const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// CarFilter describes a filtered, sorted, paginated catalog query. String
// fields are exact-match predicates when non-empty, except Model and Search
// which match as case-insensitive substrings. Pointer fields are inclusive
// bounds, absent when nil. All predicates combine conjunctively.
type CarFilter struct {
	Make         string
	Model        string
	Fuel         string
	Transmission string
	Status       string
	Year         *int
	MinPrice     *int
	MaxPrice     *int
	MinKms       *int
	MaxKms       *int
	Search       string // OR-substring across make, model, description

	Sort  string
	Page  int
	Limit int
}

// Normalize clamps the page request into its valid range: page >= 1 and
// limit within [1, MaxPageSize], defaulting to DefaultPageSize when unset.
func (f *CarFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

// Offset returns the LIMIT/OFFSET start position for the normalized page.
func (f *CarFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes the page metadata returned alongside a catalog slice.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// NewPagination computes page metadata for the given total match count.
// Pages is ceil(total/limit), 0 when nothing matched.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
