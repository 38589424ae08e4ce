package store

// Pagination is the cursor state for a paginated collection.
type Pagination struct {
	// Page is the current page number, starting at 1.
	Page int

	// PageSize is the fixed number of entries per page.
	PageSize int

	// TotalCount is the total number of entries reported by the
	// last paginated fetch.
	TotalCount int

	// TotalPages is derived from TotalCount and PageSize.
	TotalPages int

	// HasNext and HasPrevious mirror the cursor presence in the last
	// paginated fetch. They are the server's word, never recomputed
	// from page arithmetic, so they stay correct even when
	// server-side filtering makes the counts inconsistent.
	HasNext     bool
	HasPrevious bool
}

// totalPages returns ceil(count / pageSize).
func totalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
