package engine

import (
	"sync/atomic"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// Store publishes the current table snapshot. Readers call Load once per
// request and work on that snapshot only; a reload replaces the whole
// reference with Swap, so a reader sees either the old or the new table.
type Store struct {
	current atomic.Pointer[types.Table]
}

// NewStore returns a Store holding t. A nil t means no data is loaded yet.
func NewStore(t *types.Table) *Store {
	s := &Store{}
	if t != nil {
		s.current.Store(t)
	}
	return s
}

// Load returns the current snapshot, or nil if none has been published.
func (s *Store) Load() *types.Table {
	return s.current.Load()
}

// Swap publishes t and returns the previous snapshot.
func (s *Store) Swap(t *types.Table) *types.Table {
	return s.current.Swap(t)
}
