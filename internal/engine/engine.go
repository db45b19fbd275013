// Package engine evaluates filter, pagination, and aggregation queries over
// the immutable table snapshot published in a Store.
// See docs/ARCHITECTURE.md § Query Engine.
package engine

import (
	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// Engine answers request-level queries. Each call loads exactly one snapshot
// from the store and validates all parameters before doing any work.
type Engine struct {
	store    *Store
	maxCount int
}

// New creates an Engine reading from store with the given page size bound.
func New(store *Store, maxCount int) *Engine {
	if maxCount <= 0 {
		maxCount = types.DefaultMaxCount
	}
	return &Engine{store: store, maxCount: maxCount}
}

// MaxCount returns the largest page size accepted.
func (e *Engine) MaxCount() int { return e.maxCount }

// Snapshot returns the table currently published, or nil.
func (e *Engine) Snapshot() *types.Table { return e.store.Load() }

// Keys returns the column names in table order.
func (e *Engine) Keys() ([]string, error) {
	t := e.store.Load()
	if t == nil {
		return nil, types.ErrDataUnavailable
	}
	return t.Columns(), nil
}

// Rows returns one page of the rows matching the keys/values filter.
func (e *Engine) Rows(keys, values []string, page types.PageSpec) (types.Page[types.Record], error) {
	t := e.store.Load()
	if err := Validate(t, page, e.maxCount); err != nil {
		return types.Page[types.Record]{}, err
	}
	spec, err := ValidateFilter(t, keys, values)
	if err != nil {
		return types.Page[types.Record]{}, err
	}
	rows, total := Query(t, spec, page)
	return types.Page[types.Record]{Offset: page.Offset, Items: t.Records(rows), Total: total}, nil
}

// Values returns one page of the distinct values of column.
func (e *Engine) Values(column string, page types.PageSpec) (types.Page[string], error) {
	t := e.store.Load()
	if err := Validate(t, page, e.maxCount); err != nil {
		return types.Page[string]{}, err
	}
	vals, total, err := ListValues(t, column, page)
	if err != nil {
		return types.Page[string]{}, err
	}
	return types.Page[string]{Offset: page.Offset, Items: vals, Total: total}, nil
}

// Counts returns one page of per-value row counts of column, computed over
// the rows matching the keys/values filter. The column is checked before the
// filter so an unknown column is reported as a lookup failure.
func (e *Engine) Counts(column string, keys, values []string, page types.PageSpec) (types.Page[types.KeyCount], error) {
	t := e.store.Load()
	if err := Validate(t, page, e.maxCount); err != nil {
		return types.Page[types.KeyCount]{}, err
	}
	if err := checkColumn(t, column); err != nil {
		return types.Page[types.KeyCount]{}, err
	}
	spec, err := ValidateFilter(t, keys, values)
	if err != nil {
		return types.Page[types.KeyCount]{}, err
	}
	counts, total, err := CountByKey(t, column, spec, page)
	if err != nil {
		return types.Page[types.KeyCount]{}, err
	}
	return types.Page[types.KeyCount]{Offset: page.Offset, Items: counts, Total: total}, nil
}
