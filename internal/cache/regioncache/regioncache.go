// Package regioncache is the region chunk cache (spec §4.K): an
// in-process LRU over rectangle-keyed cell slices with a 1-hour TTL.
package regioncache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/keys"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
)

// Cache wraps an expirable LRU of region rectangle -> immutable cell
// slice. Cells are never mutated in place after insertion: a writer
// replaces the whole entry via Put.
type Cache struct {
	lru *lru.LRU[string, []grid.Cell]
}

func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = 10
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{lru: lru.NewLRU[string, []grid.Cell](maxEntries, nil, ttl)}
}

func (c *Cache) Get(b grid.Bounds) ([]grid.Cell, bool) {
	cells, ok := c.lru.Get(keys.RegionKey(b))
	observability.ObserveRegionCache(ok)
	return cells, ok
}

func (c *Cache) Put(b grid.Bounds, cells []grid.Cell) {
	c.lru.Add(keys.RegionKey(b), cells)
}
