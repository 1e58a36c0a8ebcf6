package domain

// SortOrder enumerates the sort directions a listing accepts.
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
	SortNameAsc     SortOrder = "name_asc"
	SortNameDesc    SortOrder = "name_desc"
	SortPriceAsc    SortOrder = "price_asc"
	SortPriceDesc   SortOrder = "price_desc"
	SortRatingDesc  SortOrder = "rating_desc"
)

// Valid reports whether s is one of the enumerated sort orders.
func (s SortOrder) Valid() bool {
	switch s {
	case SortNewestFirst, SortOldestFirst, SortNameAsc, SortNameDesc,
		SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

// DefaultPageSize is applied when a listing request does not set a limit.
const DefaultPageSize = 10

// ListQuery is the validated pagination/sort configuration for listings.
// Handlers build it from query parameters; stores never see raw strings.
type ListQuery struct {
	Page   uint
	Limit  uint
	SortBy SortOrder

	// Fields restricts the projection of returned documents.
	// Empty means all fields.
	Fields []string
}

// Normalize applies defaults for zero values.
func (q ListQuery) Normalize() ListQuery {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageSize
	}
	if q.SortBy == "" {
		q.SortBy = SortNewestFirst
	}
	return q
}

// Skip returns the number of documents to skip for the current page.
func (q ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage uint  `json:"itemsPerPage"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  uint  `json:"currentPage"`
}

// NewPagination computes the page window for a listing of total documents
// of which itemCount were returned for the given query.
func NewPagination(q ListQuery, total int64, itemCount int) Pagination {
	totalPages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		totalPages++
	}
	return Pagination{
		TotalItems:   total,
		ItemCount:    itemCount,
		ItemsPerPage: q.Limit,
		TotalPages:   totalPages,
		CurrentPage:  q.Page,
	}
}
