package geo

import (
	"math"
	"testing"
)

func almostEq(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got=%g want=%g (eps=%g)", got, want, eps)
	}
}

func TestHaversineZeroDistance(t *testing.T) {
	if d := Haversine(10, 20, 10, 20); d != 0 {
		t.Fatalf("same point should be 0km apart, got %g", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// London to Paris, widely cited as ~344km great-circle.
	d := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	almostEq(t, d, 344, 5)
}

func TestHaversineSymmetric(t *testing.T) {
	a := Haversine(10, 10, 20, 30)
	b := Haversine(20, 30, 10, 10)
	almostEq(t, a, b, 1e-9)
}

func TestBearingCardinalDirections(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Bearing(c.lat1, c.lon1, c.lat2, c.lon2)
			almostEq(t, got, c.want, 1.0)
		})
	}
}

func TestBearingNormalizedRange(t *testing.T) {
	b := Bearing(0, 0, -1, -1)
	if b < 0 || b >= 360 {
		t.Fatalf("bearing %g not in [0, 360)", b)
	}
}

func TestTurnPenaltyNoPrev(t *testing.T) {
	p := TurnPenalty(false, Point{}, Point{Lat: 1, Lon: 1}, Point{Lat: 2, Lon: 2})
	if p != 0 {
		t.Fatalf("no previous point should carry no turn penalty, got %g", p)
	}
}

func TestTurnPenaltyMonotonicWithAngle(t *testing.T) {
	prev := Point{Lat: 0, Lon: 0}
	curr := Point{Lat: 1, Lon: 0}

	straight := TurnPenalty(true, prev, curr, Point{Lat: 2, Lon: 0})
	sharp := TurnPenalty(true, prev, curr, Point{Lat: 1, Lon: -1})

	if straight != 0 {
		t.Fatalf("continuing straight north should have 0 penalty, got %g", straight)
	}
	if sharp <= straight {
		t.Fatalf("a sharp turn (%g) should cost more than straight (%g)", sharp, straight)
	}
}

func TestPerpendicularDistanceOnLine(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 10}
	p := Point{Lat: 0, Lon: 5}
	almostEq(t, PerpendicularDistance(p, a, b), 0, 1e-9)
}

func TestPerpendicularDistanceOffLine(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 10}
	p := Point{Lat: 3, Lon: 5}
	almostEq(t, PerpendicularDistance(p, a, b), 3, 1e-9)
}

func TestPerpendicularDistanceDegenerateSegment(t *testing.T) {
	a := Point{Lat: 1, Lon: 1}
	p := Point{Lat: 4, Lon: 5}
	got := PerpendicularDistance(p, a, a)
	want := math.Hypot(3, 4)
	almostEq(t, got, want, 1e-9)
}

func TestDouglasPeuckerShortPathUnchanged(t *testing.T) {
	path := []Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}
	out := DouglasPeucker(path, 0.01)
	if len(out) != 2 {
		t.Fatalf("paths under 3 points must pass through unchanged, got %d points", len(out))
	}
}

func TestDouglasPeuckerDropsColinearPoints(t *testing.T) {
	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
		{Lat: 0, Lon: 3},
	}
	out := DouglasPeucker(path, 0.01)
	if len(out) != 2 {
		t.Fatalf("colinear points should simplify to endpoints, got %d points: %v", len(out), out)
	}
	if out[0] != path[0] || out[1] != path[len(path)-1] {
		t.Fatalf("simplified path should keep first/last point, got %v", out)
	}
}

func TestDouglasPeuckerKeepsSignificantDeviation(t *testing.T) {
	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 5, Lon: 1},
		{Lat: 0, Lon: 2},
	}
	out := DouglasPeucker(path, 0.1)
	if len(out) != 3 {
		t.Fatalf("a sharp deviation above epsilon must survive, got %d points: %v", len(out), out)
	}
}

func TestPerpendicularUnitVectorIsUnitLength(t *testing.T) {
	dLat, dLon := PerpendicularUnitVector(Point{Lat: 0, Lon: 0}, Point{Lat: 3, Lon: 4})
	length := math.Hypot(dLat, dLon)
	almostEq(t, length, 1.0, 1e-9)
}

func TestPerpendicularUnitVectorDegenerate(t *testing.T) {
	dLat, dLon := PerpendicularUnitVector(Point{Lat: 1, Lon: 1}, Point{Lat: 1, Lon: 1})
	if dLat != 0 || dLon != 0 {
		t.Fatalf("degenerate segment should yield zero vector, got (%g, %g)", dLat, dLon)
	}
}
