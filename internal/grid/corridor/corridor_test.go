package corridor

import (
	"context"
	"testing"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
)

func TestLoad_DeduplicatesOverlappingBands(t *testing.T) {
	cells := []grid.Cell{
		{Lat: 0.0, Lon: 0.0},
		{Lat: 0.04, Lon: 0.04}, // rounds to the same (0.0, 0.0) dedup key
		{Lat: 1.0, Lon: 1.0},
	}
	s := store.NewMemoryStore(cells)
	l := New(s)

	out, err := l.Load(context.Background(), routing.Waypoint{Lat: 0, Lon: 0}, routing.Waypoint{Lat: 1, Lon: 1}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 deduplicated cells, got %d: %+v", len(out), out)
	}
}

func TestLoad_ResultSortedByLatThenLon(t *testing.T) {
	cells := []grid.Cell{
		{Lat: 2, Lon: 2}, {Lat: 0, Lon: 5}, {Lat: 0, Lon: 1},
	}
	s := store.NewMemoryStore(cells)
	l := New(s)

	out, err := l.Load(context.Background(), routing.Waypoint{Lat: 0, Lon: 0}, routing.Waypoint{Lat: 2, Lon: 5}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Lat > out[i].Lat || (out[i-1].Lat == out[i].Lat && out[i-1].Lon > out[i].Lon) {
			t.Fatalf("result not sorted: %+v", out)
		}
	}
}

func TestSplitBands_CoversFullRangeWithNoGaps(t *testing.T) {
	b := grid.Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 1}
	bands := splitBands(b, 4)
	if len(bands) != 4 {
		t.Fatalf("expected 4 bands, got %d", len(bands))
	}
	if bands[0].LatMin != 0 {
		t.Fatalf("first band should start at LatMin, got %g", bands[0].LatMin)
	}
	if bands[len(bands)-1].LatMax != 10 {
		t.Fatalf("last band should end exactly at LatMax, got %g", bands[len(bands)-1].LatMax)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].LatMin != bands[i-1].LatMax {
			t.Fatalf("bands must be contiguous: %+v", bands)
		}
	}
}

func TestSplitBands_SingleBandForDegenerateRange(t *testing.T) {
	b := grid.Bounds{LatMin: 5, LatMax: 5, LonMin: 0, LonMax: 1}
	bands := splitBands(b, 4)
	if len(bands) != 1 {
		t.Fatalf("a zero-height range should not be split, got %d bands", len(bands))
	}
}

func TestExpandedBounds_AddsWidthOnAllSides(t *testing.T) {
	b := expandedBounds(routing.Waypoint{Lat: 1, Lon: 1}, routing.Waypoint{Lat: 3, Lon: 5}, 0.5)
	if b.LatMin != 0.5 || b.LatMax != 3.5 || b.LonMin != 0.5 || b.LonMax != 5.5 {
		t.Fatalf("unexpected expanded bounds: %+v", b)
	}
}
