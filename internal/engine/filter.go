package engine

import (
	"strings"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// FilterRows returns the rows of t whose cells contain every filter value as
// a case-sensitive substring of the named column. Missing cells never match.
// An empty spec returns the table's rows unchanged.
func FilterRows(t *types.Table, spec types.FilterSpec) []types.Row {
	rows := t.Rows()
	if len(spec) == 0 {
		return rows
	}

	// Single pass: a row survives only if it matches all constraints.
	out := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, spec) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row types.Row, spec types.FilterSpec) bool {
	for _, f := range spec {
		cell, ok := row[f.Column]
		if !ok || !strings.Contains(cell, f.Value) {
			return false
		}
	}
	return true
}
