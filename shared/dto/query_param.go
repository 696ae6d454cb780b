package dto

import "roombook/shared/constant"

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls the ordering of repository reads.
// Store reads always use InsertionOrder so projections see entities in the order they were created.
type QueryParams struct {
	SortBy  string
	SortDir string
}

// InsertionOrder sorts by the sequential primary key, oldest first.
func InsertionOrder() QueryParams {
	return QueryParams{
		SortBy:  constant.DefaultValueSortBy,
		SortDir: SortDirAsc,
	}
}
