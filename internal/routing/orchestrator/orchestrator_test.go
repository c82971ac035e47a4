package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/regioncache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/routecache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/corridor"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

const testRes = 1.0

func openWaterGrid(latMin, latMax, lonMin, lonMax int) []grid.Cell {
	var cells []grid.Cell
	for lat := latMin; lat <= latMax; lat++ {
		for lon := lonMin; lon <= lonMax; lon++ {
			cells = append(cells, grid.Cell{Lat: float64(lat), Lon: float64(lon)})
		}
	}
	return cells
}

func newTestOrchestrator(t *testing.T, cells []grid.Cell) *Orchestrator {
	t.Helper()
	s := store.NewMemoryStore(cells)
	l := zerolog.Nop()
	cfg := DefaultConfig()
	cfg.Resolution = testRes
	cfg.EnableWeatherUpdate = false
	return &Orchestrator{
		Store:        s,
		CorridorLoad: corridor.New(s),
		RegionCache:  regioncache.New(10, time.Hour),
		RouteCache:   routecache.New(nil, 10, time.Hour),
		Logger:       &l,
		Config:       cfg,
	}
}

func TestPlan_DirectShortRouteSucceeds(t *testing.T) {
	cells := openWaterGrid(-2, 2, -2, 5)
	o := newTestOrchestrator(t, cells)

	start := routing.Waypoint{Lat: 0, Lon: 0, Name: "A"}
	end := routing.Waypoint{Lat: 0, Lon: 3, Name: "B"}

	route, err := o.Plan(context.Background(), start, end, mode.Optimal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !route.Success {
		t.Fatalf("expected a successful route")
	}
	if len(route.Path) < 2 {
		t.Fatalf("expected a multi-point path, got %d points", len(route.Path))
	}
	if route.Summary.DistanceKm <= 0 {
		t.Fatalf("expected positive distance in summary, got %g", route.Summary.DistanceKm)
	}
	if route.Summary.Mode != string(mode.Optimal) {
		t.Fatalf("summary mode mismatch: got %s", route.Summary.Mode)
	}
}

func TestPlan_FailsWhenEntirelyLandlocked(t *testing.T) {
	cells := openWaterGrid(-2, 2, -2, 5)
	for i := range cells {
		cells[i].IsLand = true
	}
	o := newTestOrchestrator(t, cells)

	start := routing.Waypoint{Lat: 0, Lon: 0}
	end := routing.Waypoint{Lat: 0, Lon: 3}

	_, err := o.Plan(context.Background(), start, end, mode.Optimal)
	if err == nil {
		t.Fatalf("expected an error when no navigable cell exists")
	}
}

func TestPlan_RouteCacheHitSkipsRecompute(t *testing.T) {
	cells := openWaterGrid(-2, 2, -2, 5)
	o := newTestOrchestrator(t, cells)

	// Use the named hub coordinates so the route cache actually engages.
	start := routing.Waypoint{Lat: 13.08, Lon: 80.27, Name: "Chennai"}
	end := routing.Waypoint{Lat: 9.93, Lon: 76.26, Name: "Kochi"}

	cachedRoute := routing.Route{Success: true, Summary: routing.Summary{DistanceKm: 12345}}
	o.RouteCache.Put(context.Background(), "Chennai", "Kochi", mode.Optimal, cachedRoute)

	route, err := o.Plan(context.Background(), start, end, mode.Optimal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Summary.DistanceKm != 12345 {
		t.Fatalf("expected the pre-seeded cached route to be returned untouched, got %+v", route.Summary)
	}
}

func TestAnnotate_SkipsLandCells(t *testing.T) {
	cells := []grid.Cell{{Lat: 0, Lon: 0, IsLand: true}, {Lat: 0, Lon: 1}}
	idx := coastal.NewIndex(cells, testRes)
	annotate(cells, idx, testRes)

	if cells[0].SafetyScore != 0 {
		t.Fatalf("a land cell should never be annotated with a safety score, got %+v", cells[0])
	}
	if cells[1].SafetyScore == 0 {
		t.Fatalf("a water cell should receive a non-zero safety score (neutral 1.0 absent weather)")
	}
}
