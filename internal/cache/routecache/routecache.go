// Package routecache is the precomputed hub-to-hub route cache (spec
// §4.K): a small named hub set, Redis-backed, fronted by an in-process
// LRU.
package routecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/keys"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

// Hub is a named connection point eligible for precomputed-route reuse
// (spec §4.K). This list is separate from coarseplanner's own
// three-port hub list, which it includes.
type Hub struct {
	Name     string
	Lat, Lon float64
}

// Hubs is the small named set over which routes are precomputed.
var Hubs = []Hub{
	{"Chennai", 13.08, 80.27},
	{"Kochi", 9.93, 76.26},
	{"Tuticorin", 8.80, 78.15},
	{"Mumbai", 18.97, 72.87},
	{"Visakhapatnam", 17.68, 83.30},
	{"Colombo", 6.93, 79.84},
	{"Singapore", 1.28, 103.85},
}

// HubMatchRadiusDeg is how close an endpoint must be to a hub for
// precomputed-route lookup to apply (spec §4.K: "within 0.5 degrees").
const HubMatchRadiusDeg = 0.5

// NearestHub returns the hub within HubMatchRadiusDeg of (lat, lon),
// or ok=false if none qualifies.
func NearestHub(lat, lon float64) (Hub, bool) {
	best := Hub{}
	bestDist := HubMatchRadiusDeg
	found := false
	for _, h := range Hubs {
		d := geo.Haversine(lat, lon, h.Lat, h.Lon) / 111.0 // approximate degrees
		if d <= bestDist {
			bestDist = d
			best = h
			found = true
		}
	}
	return best, found
}

// Cache is the two-tier precomputed route cache: an LRU front over a
// Redis-backed store.
type Cache struct {
	rdb *redis.Client
	lru *lru.Cache[string, routing.Route]
	ttl time.Duration
}

func New(rdb *redis.Client, maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	l, _ := lru.New[string, routing.Route](maxEntries)
	return &Cache{rdb: rdb, lru: l, ttl: ttl}
}

// Get looks up a precomputed route for (fromHub, toHub, mode),
// trying the in-process LRU first and falling back to Redis. The
// result's Path is reversed automatically if the caller traverses the
// hub pair in the opposite direction from how it was stored.
func (c *Cache) Get(ctx context.Context, fromHub, toHub string, m mode.Mode) (routing.Route, bool) {
	key := keys.RouteKey(fromHub, toHub, m)
	if r, ok := c.lru.Get(key); ok {
		observability.ObserveRouteCache(true)
		return r, true
	}

	reverseKey := keys.RouteKey(toHub, fromHub, m)
	if r, ok := c.lru.Get(reverseKey); ok {
		reversed := reverseRoute(r)
		c.lru.Add(key, reversed)
		observability.ObserveRouteCache(true)
		return reversed, true
	}

	if c.rdb != nil {
		if r, ok := c.fetchRedis(ctx, key); ok {
			c.lru.Add(key, r)
			observability.ObserveRouteCache(true)
			return r, true
		}
		if r, ok := c.fetchRedis(ctx, reverseKey); ok {
			reversed := reverseRoute(r)
			c.lru.Add(key, reversed)
			observability.ObserveRouteCache(true)
			return reversed, true
		}
	}
	observability.ObserveRouteCache(false)
	return routing.Route{}, false
}

func (c *Cache) fetchRedis(ctx context.Context, key string) (routing.Route, bool) {
	start := time.Now()
	b, err := c.rdb.Get(ctx, redisKey(key)).Bytes()
	observability.ObserveCacheOp("route_get", err, time.Since(start).Seconds())
	if err != nil {
		return routing.Route{}, false
	}
	var r routing.Route
	if err := json.Unmarshal(b, &r); err != nil {
		return routing.Route{}, false
	}
	return r, true
}

// Put stores a freshly computed hub-to-hub route.
func (c *Cache) Put(ctx context.Context, fromHub, toHub string, m mode.Mode, r routing.Route) {
	key := keys.RouteKey(fromHub, toHub, m)
	c.lru.Add(key, r)
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	start := time.Now()
	err = c.rdb.Set(ctx, redisKey(key), b, c.ttl).Err()
	observability.ObserveCacheOp("route_set", err, time.Since(start).Seconds())
}

func redisKey(k string) string { return fmt.Sprintf("jalmarg:%s", k) }

func reverseRoute(r routing.Route) routing.Route {
	out := r
	out.Path = make([]routing.PathPoint, len(r.Path))
	for i, p := range r.Path {
		out.Path[len(r.Path)-1-i] = p
	}
	return out
}
