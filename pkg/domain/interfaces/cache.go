package interfaces

import (
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// ResultCache memoizes fetch results for a fixed time-to-live measured from
// creation. Entries are snapshots: callers get copies and cannot mutate them.
type ResultCache interface {
	// Get returns a live entry. Expired entries are reported as missing.
	Get(key model.CacheKey) (*model.CacheEntry, bool)
	// Put stores (or replaces) the entry for key
	Put(key model.CacheKey, events []*model.Event) *model.CacheEntry
	// Generation returns the invalidation counter of one fetcher
	Generation(source types.SourceID) uint64
	// PutIfCurrent stores the entry only when no invalidation of key.Source
	// happened since gen was read. It reports whether the entry was stored.
	PutIfCurrent(key model.CacheKey, events []*model.Event, gen uint64) (*model.CacheEntry, bool)
	// Invalidate evicts every entry of one fetcher regardless of age
	Invalidate(source types.SourceID)
	// InvalidateAll evicts every entry
	InvalidateAll()
}
