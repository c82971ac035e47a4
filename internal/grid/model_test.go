package grid

import "testing"

func TestCell_Navigable(t *testing.T) {
	if !(Cell{}).Navigable() {
		t.Fatalf("a plain water cell should be navigable")
	}
	if (Cell{IsLand: true}).Navigable() {
		t.Fatalf("a land cell must not be navigable")
	}
	if (Cell{Obstacle: true}).Navigable() {
		t.Fatalf("an obstacle cell must not be navigable")
	}
}

func TestCell_KeyRoundsToFourDecimals(t *testing.T) {
	a := Cell{Lat: 12.345649, Lon: 80.123449}
	b := Cell{Lat: 12.345651, Lon: 80.123451}
	if a.Key() == b.Key() {
		t.Fatalf("cells on either side of the rounding boundary should produce distinct keys")
	}

	if a.Key() != (CellKey{LatE4: 123456, LonE4: 801234}) {
		t.Fatalf("unexpected key for a: %+v", a.Key())
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}
	if !b.Contains(5, 5) {
		t.Fatalf("expected an interior point to be contained")
	}
	if !b.Contains(0, 0) || !b.Contains(10, 10) {
		t.Fatalf("expected boundary points to be contained")
	}
	if b.Contains(-1, 5) || b.Contains(5, 11) {
		t.Fatalf("expected points outside the rectangle to be excluded")
	}
}

func TestBounds_Intersects(t *testing.T) {
	a := Bounds{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}
	overlapping := Bounds{LatMin: 5, LatMax: 15, LonMin: 5, LonMax: 15}
	disjoint := Bounds{LatMin: 20, LatMax: 30, LonMin: 20, LonMax: 30}

	if !a.Intersects(overlapping) {
		t.Fatalf("expected overlapping rectangles to intersect")
	}
	if a.Intersects(disjoint) {
		t.Fatalf("expected disjoint rectangles not to intersect")
	}
}

func TestRoundToResolution(t *testing.T) {
	if got := RoundToResolution(12.34, 0.2); got != 12.4 {
		t.Fatalf("expected rounding to the nearest 0.2 step, got %g", got)
	}
	if got := RoundToResolution(12.34, 0); got != 12.34 {
		t.Fatalf("expected a non-positive resolution to return the value unchanged, got %g", got)
	}
}
