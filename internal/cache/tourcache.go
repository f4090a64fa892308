// Package cache holds the shared optimistic read model for tours.
// Speculative group updates are applied to the cached tour while
// persistence is in flight; the merge rule preserves participant
// lists that a partial write payload would otherwise clobber.
package cache

import (
	"sync"

	"github.com/iliyamo/tour-operations/internal/model"
)

// MergeGroups merges partial group updates into a cached tour.  Each
// update is located by group id and shallow-merged over the cached
// group.  A cached participant list is preserved when the update's
// list is empty or absent: several write paths return groups without
// participant data, and treating that as a deletion would blank
// participants in the UI on every unrelated update.  Updates for
// unknown group ids are appended.  The function is pure and
// idempotent; the input tour is not mutated.
func MergeGroups(cached model.Tour, updates []model.Group) model.Tour {
	merged := cached
	merged.Groups = make([]model.Group, len(cached.Groups))
	copy(merged.Groups, cached.Groups)

	index := make(map[string]int, len(merged.Groups))
	for i, g := range merged.Groups {
		index[g.ID] = i
	}

	for _, upd := range updates {
		i, ok := index[upd.ID]
		if !ok {
			index[upd.ID] = len(merged.Groups)
			merged.Groups = append(merged.Groups, upd)
			continue
		}
		prev := merged.Groups[i]
		next := upd
		if len(next.Participants) == 0 && len(prev.Participants) > 0 {
			// Empty means "not included in this payload", not "removed".
			next.Participants = prev.Participants
		}
		if next.TourID == "" {
			next.TourID = prev.TourID
		}
		merged.Groups[i] = next
	}
	return merged
}

// TourCache is the process-wide read model keyed by tour id.  All
// mutations go through MergeGroups so a speculative write and the
// eventual confirmed server state cannot lose each other's fields.
type TourCache struct {
	mu    sync.RWMutex
	tours map[string]model.Tour
}

// NewTourCache returns an empty cache.
func NewTourCache() *TourCache {
	return &TourCache{tours: make(map[string]model.Tour)}
}

// Get returns a copy of the cached tour and whether it was present.
func (c *TourCache) Get(tourID string) (model.Tour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tours[tourID]
	return t, ok
}

// Put replaces the cached tour with confirmed server state.
func (c *TourCache) Put(t model.Tour) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tours[t.ID] = t
}

// ApplyGroupUpdates merges speculative group updates into the cached
// tour.  A miss is a no-op; there is nothing to keep consistent until
// the tour has been read at least once.
func (c *TourCache) ApplyGroupUpdates(tourID string, updates []model.Group) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.tours[tourID]
	if !ok {
		return
	}
	c.tours[tourID] = MergeGroups(cached, updates)
}

// Invalidate drops the cached tour, forcing the next read through to
// the store.  Used by the UI after a terminal sync failure to
// reconcile against truth.
func (c *TourCache) Invalidate(tourID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tours, tourID)
}
