package fineplanner

import (
	"testing"
	"time"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

// buildOpenWaterGrid creates an all-navigable grid at resolution res
// covering indices 0..n-1, padded with a 3-cell open-water margin on
// every side so no cell in 0..n-1 is a narrow passage (missing cells
// count as blocked). Cost-model fields are already annotated so the
// search doesn't need the orchestrator's annotation pass.
func buildOpenWaterGrid(n int, res float64) []grid.Cell {
	const margin = 3
	cells := make([]grid.Cell, 0, (n+2*margin)*(n+2*margin))
	for i := -margin; i < n+margin; i++ {
		for j := -margin; j < n+margin; j++ {
			cells = append(cells, grid.Cell{
				Lat: float64(i) * res, Lon: float64(j) * res,
				DistanceToLand: 99, NearCoast: false,
				SafetyScore: 1, FuelEfficiencyScore: 1,
			})
		}
	}
	return cells
}

func TestPlan_FindsDirectPathOverOpenWater(t *testing.T) {
	const res = 1.0
	cells := buildOpenWaterGrid(5, res)
	idx := coastal.NewIndex(cells, res)

	start := grid.Cell{Lat: 0, Lon: 0}
	goal := grid.Cell{Lat: 4, Lon: 4}

	result, err := Plan(Params{
		Start: start, Goal: goal, Mode: mode.Optimal, Index: idx,
		Resolution: res, LengthFactorKm: 100, Limits: DefaultLimits(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Path[0].Key() != start.Key() {
		t.Fatalf("path should start at the start cell, got %+v", result.Path[0])
	}
	if result.Path[len(result.Path)-1].Key() != goal.Key() {
		t.Fatalf("path should end at the goal cell, got %+v", result.Path[len(result.Path)-1])
	}
	if result.DistanceKm <= 0 {
		t.Fatalf("expected a positive travelled distance, got %g", result.DistanceKm)
	}
}

func TestPlan_FailsWhenGoalUnreachable(t *testing.T) {
	const res = 1.0
	cells := buildOpenWaterGrid(3, res)
	idx := coastal.NewIndex(cells, res)

	start := grid.Cell{Lat: 0, Lon: 0}
	goal := grid.Cell{Lat: 50, Lon: 50} // far outside the indexed grid

	_, err := Plan(Params{
		Start: start, Goal: goal, Mode: mode.Optimal, Index: idx,
		Resolution: res, LengthFactorKm: 100, Limits: DefaultLimits(),
	})
	if err == nil {
		t.Fatalf("expected a no_path error for an unreachable goal")
	}
}

func TestPlan_RespectsMaxNodesLimit(t *testing.T) {
	const res = 1.0
	cells := buildOpenWaterGrid(10, res)
	idx := coastal.NewIndex(cells, res)

	start := grid.Cell{Lat: 0, Lon: 0}
	goal := grid.Cell{Lat: 9, Lon: 9}

	_, err := Plan(Params{
		Start: start, Goal: goal, Mode: mode.Optimal, Index: idx,
		Resolution: res, LengthFactorKm: 100,
		Limits: Limits{MaxNodes: 1, MaxTime: time.Minute},
	})
	if err == nil {
		t.Fatalf("expected the tiny node budget to be exceeded")
	}
}

func TestPlan_AvoidsLandCells(t *testing.T) {
	const res = 1.0
	cells := buildOpenWaterGrid(5, res)
	// Wall off lon=2 from the grid's southern edge up to lat=3, leaving
	// open water from lat=4 north (a one-cell gap would itself be a
	// narrow passage), forcing the search to route up and over the
	// wall's end rather than straight across.
	for i := range cells {
		if cells[i].Lon == 2 && cells[i].Lat <= 3 {
			cells[i].IsLand = true
		}
	}
	idx := coastal.NewIndex(cells, res)

	start := grid.Cell{Lat: 0, Lon: 0}
	goal := grid.Cell{Lat: 4, Lon: 4}

	result, err := Plan(Params{
		Start: start, Goal: goal, Mode: mode.Optimal, Index: idx,
		Resolution: res, LengthFactorKm: 100, Limits: DefaultLimits(),
	})
	if err != nil {
		t.Fatalf("expected a path around the land wall, got error %v", err)
	}
	for _, c := range result.Path {
		if c.Lon == 2 {
			full, _ := idx.Get(c.Lat, c.Lon)
			if full.IsLand {
				t.Fatalf("path must not cross a land cell: %+v", c)
			}
		}
	}
}

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if l.MaxNodes <= 0 || l.MaxTime <= 0 {
		t.Fatalf("default limits must be positive, got %+v", l)
	}
}

func TestSmooth_KeepsEndpoints(t *testing.T) {
	cells := []grid.Cell{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}, {Lat: 0, Lon: 3},
	}
	out := Smooth(cells, 0.01)
	if len(out) < 2 {
		t.Fatalf("smoothed path must keep at least the endpoints, got %d", len(out))
	}
	if out[0].Key() != cells[0].Key() || out[len(out)-1].Key() != cells[len(cells)-1].Key() {
		t.Fatalf("smoothing must preserve start/end cells")
	}
}
