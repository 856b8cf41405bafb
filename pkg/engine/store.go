package engine

import (
	"sync/atomic"

	"github.com/yogalign/yogalign/pkg/poseapi"
)

// Store holds the single most recent completed comparison result. The
// engine is the sole writer; the renderer and dashboard read without
// locking. The snapshot is replaced atomically by reference, never
// mutated in place, so a reader always sees a whole result or nil.
type Store struct {
	v atomic.Pointer[poseapi.ComparisonResult]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load returns the latest snapshot, or nil when no comparison has
// completed yet. Callers must treat the result as read-only.
func (s *Store) Load() *poseapi.ComparisonResult {
	return s.v.Load()
}

func (s *Store) replace(r *poseapi.ComparisonResult) {
	s.v.Store(r)
}

func (s *Store) clear() {
	s.v.Store(nil)
}
