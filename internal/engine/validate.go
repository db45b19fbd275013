package engine

import (
	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// Validate checks that data is loaded and that page is within bounds.
func Validate(t *types.Table, page types.PageSpec, maxCount int) error {
	if t == nil {
		return types.ErrDataUnavailable
	}
	if page.Count <= 0 || page.Count > maxCount {
		return &types.CountError{Count: page.Count, Max: maxCount}
	}
	if page.Offset <= 0 {
		return types.ErrInvalidOffset
	}
	return nil
}

// ValidateFilter pairs keys with values, in order. Every key must be a column
// of t; the first unknown key is reported. Empty input yields an empty spec.
func ValidateFilter(t *types.Table, keys, values []string) (types.FilterSpec, error) {
	if len(keys) != len(values) {
		return nil, types.ErrKeyValueMismatch
	}
	if t == nil {
		return nil, types.ErrDataUnavailable
	}
	spec := make(types.FilterSpec, 0, len(keys))
	for i, k := range keys {
		if !t.HasColumn(k) {
			return nil, &types.KeyError{Key: k}
		}
		spec = append(spec, types.Filter{Column: k, Value: values[i]})
	}
	return spec, nil
}

// checkColumn validates the primary column of a lookup operation.
func checkColumn(t *types.Table, column string) error {
	if !t.HasColumn(column) {
		return &types.KeyError{Key: column, Lookup: true}
	}
	return nil
}
