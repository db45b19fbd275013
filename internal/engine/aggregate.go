package engine

import (
	"slices"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// DistinctValues returns the non-missing values of column in the order they
// first appear in rows.
func DistinctValues(rows []types.Row, column string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, row := range rows {
		v, ok := row[column]
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// GroupCounts counts rows per value of column. The result is ordered by
// count descending; equal counts keep first-occurrence order.
func GroupCounts(rows []types.Row, column string) []types.KeyCount {
	pos := make(map[string]int)
	groups := make([]types.KeyCount, 0)
	for _, row := range rows {
		v, ok := row[column]
		if !ok {
			continue
		}
		i, exists := pos[v]
		if !exists {
			i = len(groups)
			pos[v] = i
			groups = append(groups, types.KeyCount{Key: v})
		}
		groups[i].Count++
	}

	slices.SortStableFunc(groups, func(a, b types.KeyCount) int {
		return b.Count - a.Count
	})
	return groups
}

// ListValues returns one page of the distinct values of column.
func ListValues(t *types.Table, column string, page types.PageSpec) ([]string, int, error) {
	if err := checkColumn(t, column); err != nil {
		return nil, 0, err
	}
	vals, total := Paginate(DistinctValues(t.Rows(), column), page)
	return vals, total, nil
}

// CountByKey filters t by spec, groups the surviving rows by column, and
// returns one page of the grouped counts.
func CountByKey(t *types.Table, column string, spec types.FilterSpec, page types.PageSpec) ([]types.KeyCount, int, error) {
	if err := checkColumn(t, column); err != nil {
		return nil, 0, err
	}
	counts, total := Paginate(GroupCounts(FilterRows(t, spec), column), page)
	return counts, total, nil
}

// Query filters t by spec and returns one page of the matching rows.
func Query(t *types.Table, spec types.FilterSpec, page types.PageSpec) ([]types.Row, int) {
	return Paginate(FilterRows(t, spec), page)
}
