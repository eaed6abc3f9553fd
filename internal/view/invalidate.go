// Package view carries cache-invalidation hints from the services to
// the presentation layer.
package view

import "sync"

// Invalidator receives a fire-and-forget hint that cached views of a
// route should be recomputed.
type Invalidator interface {
	Invalidate(path string)
}

// Tracker is an Invalidator that keeps a monotonically increasing
// revision per path. Clients poll the revision to detect stale views.
type Tracker struct {
	mu        sync.Mutex
	revisions map[string]int64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{revisions: make(map[string]int64)}
}

// Invalidate bumps the revision for the given path.
func (t *Tracker) Invalidate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revisions[path]++
}

// Revision returns the current revision for a path; a path never
// invalidated is at revision 0.
func (t *Tracker) Revision(path string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revisions[path]
}
