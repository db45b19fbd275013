package types

// Filter is one (column, substring) constraint.
type Filter struct {
	Column string
	Value  string
}

// FilterSpec is an ordered list of constraints applied conjunctively.
// An empty FilterSpec matches every row.
type FilterSpec []Filter

// PageSpec selects a page of results. Offset is 1-based.
type PageSpec struct {
	Count  int
	Offset int
}

// KeyCount is one entry of a grouped count.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Page is one page of results together with the size of the sequence it was
// cut from.
type Page[T any] struct {
	Offset int
	Items  []T
	Total  int
}
