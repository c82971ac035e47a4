package routecache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

func newMiniClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sampleRoute() routing.Route {
	return routing.Route{
		Success: true,
		Path: []routing.PathPoint{
			{Lat: 13.08, Lon: 80.27},
			{Lat: 1.28, Lon: 103.85},
		},
		Summary: routing.Summary{DistanceKm: 2500, Mode: string(mode.Fuel)},
	}
}

func TestNearestHub_WithinRadius(t *testing.T) {
	h, ok := NearestHub(13.08, 80.27)
	if !ok || h.Name != "Chennai" {
		t.Fatalf("expected exact Chennai match, got %+v ok=%v", h, ok)
	}
}

func TestNearestHub_OutsideRadius(t *testing.T) {
	if _, ok := NearestHub(0, 0); ok {
		t.Fatalf("mid-ocean coordinates far from any hub should not match")
	}
}

func TestCache_LRUOnlyRoundTrip(t *testing.T) {
	c := New(nil, 10, time.Hour)
	ctx := context.Background()
	r := sampleRoute()

	c.Put(ctx, "Chennai", "Singapore", mode.Fuel, r)
	got, ok := c.Get(ctx, "Chennai", "Singapore", mode.Fuel)
	if !ok {
		t.Fatalf("expected LRU hit with no redis backing")
	}
	if got.Summary.DistanceKm != r.Summary.DistanceKm {
		t.Fatalf("round-tripped route mismatch: %+v", got)
	}
}

func TestCache_MissForDifferentMode(t *testing.T) {
	c := New(nil, 10, time.Hour)
	ctx := context.Background()
	c.Put(ctx, "Chennai", "Singapore", mode.Fuel, sampleRoute())

	if _, ok := c.Get(ctx, "Chennai", "Singapore", mode.Safe); ok {
		t.Fatalf("a different mode must not hit the same cache entry")
	}
}

func TestCache_RedisFallbackWhenLRUEvicted(t *testing.T) {
	rdb := newMiniClient(t)
	ctx := context.Background()

	writer := New(rdb, 10, time.Hour)
	writer.Put(ctx, "Chennai", "Singapore", mode.Fuel, sampleRoute())

	// A second cache instance sharing the same redis has a cold LRU.
	reader := New(rdb, 10, time.Hour)
	got, ok := reader.Get(ctx, "Chennai", "Singapore", mode.Fuel)
	if !ok {
		t.Fatalf("expected a redis-backed hit on a cold LRU")
	}
	if len(got.Path) != 2 {
		t.Fatalf("unexpected path length after redis round-trip: %v", got.Path)
	}
}

func TestCache_ReversedDirectionReusesStoredRoute(t *testing.T) {
	rdb := newMiniClient(t)
	ctx := context.Background()

	c := New(rdb, 10, time.Hour)
	c.Put(ctx, "Chennai", "Singapore", mode.Fuel, sampleRoute())

	got, ok := c.Get(ctx, "Singapore", "Chennai", mode.Fuel)
	if !ok {
		t.Fatalf("expected the reverse hub pair to hit via path reversal")
	}
	if got.Path[0].Lat != 1.28 || got.Path[len(got.Path)-1].Lat != 13.08 {
		t.Fatalf("reversed route path is not actually reversed: %+v", got.Path)
	}
}
