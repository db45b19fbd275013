package engine

import "github.com/opendata-yamanashi/yama-api/pkg/types"

// Paginate cuts one page out of items. Offset is 1-based. An offset past the
// end yields an empty page, not an error. The returned total is len(items).
func Paginate[T any](items []T, page types.PageSpec) ([]T, int) {
	total := len(items)
	start := page.Offset - 1
	switch {
	case page.Offset > total:
		return []T{}, total
	case start+page.Count > total:
		return items[start:], total
	default:
		return items[start : start+page.Count], total
	}
}
