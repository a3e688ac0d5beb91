package memory

import (
	"sync"
	"time"

	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// DefaultResultTTL is how long a fetch result stays valid after creation
const DefaultResultTTL = 600 * time.Second

// ResultCache is a process-wide in-memory interfaces.ResultCache
type ResultCache struct {
	mu      sync.RWMutex
	entries map[model.CacheKey]*model.CacheEntry
	gens    map[types.SourceID]uint64
	epoch   uint64
	ttl     time.Duration
	now     func() time.Time
}

var _ interfaces.ResultCache = (*ResultCache)(nil)

// ResultCacheOption configures a ResultCache
type ResultCacheOption func(*ResultCache)

// WithTTL overrides DefaultResultTTL
func WithTTL(ttl time.Duration) ResultCacheOption {
	return func(c *ResultCache) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) ResultCacheOption {
	return func(c *ResultCache) {
		c.now = now
	}
}

// NewResultCache creates an empty cache
func NewResultCache(opts ...ResultCacheOption) *ResultCache {
	c := &ResultCache{
		entries: make(map[model.CacheKey]*model.CacheEntry),
		gens:    make(map[types.SourceID]uint64),
		ttl:     DefaultResultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ResultCache) Get(key model.CacheKey) (*model.CacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !c.now().Before(entry.CreatedAt.Add(c.ttl)) {
		c.mu.Lock()
		// another caller may have replaced the entry meanwhile
		if cur, exists := c.entries[key]; exists && cur == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return copyEntry(entry), true
}

func (c *ResultCache) Put(key model.CacheKey, events []*model.Event) *model.CacheEntry {
	entry := c.newEntry(key, events)

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return copyEntry(entry)
}

func (c *ResultCache) Generation(source types.SourceID) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation(source)
}

func (c *ResultCache) PutIfCurrent(key model.CacheKey, events []*model.Event, gen uint64) (*model.CacheEntry, bool) {
	entry := c.newEntry(key, events)

	c.mu.Lock()
	stored := c.generation(key.Source) == gen
	if stored {
		c.entries[key] = entry
	}
	c.mu.Unlock()

	return copyEntry(entry), stored
}

// generation must be called with c.mu held. Both counters only grow, so any
// invalidation changes their sum.
func (c *ResultCache) generation(source types.SourceID) uint64 {
	return c.gens[source] + c.epoch
}

func (c *ResultCache) newEntry(key model.CacheKey, events []*model.Event) *model.CacheEntry {
	entry := &model.CacheEntry{
		Key:       key,
		Events:    model.CloneEvents(events),
		CreatedAt: c.now(),
	}
	if entry.Events == nil {
		entry.Events = []*model.Event{}
	}
	return entry
}

func (c *ResultCache) Invalidate(source types.SourceID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[source]++
	for key := range c.entries {
		if key.Source == source {
			delete(c.entries, key)
		}
	}
}

func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	clear(c.entries)
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func copyEntry(e *model.CacheEntry) *model.CacheEntry {
	return &model.CacheEntry{
		Key:       e.Key,
		Events:    model.CloneEvents(e.Events),
		CreatedAt: e.CreatedAt,
	}
}
