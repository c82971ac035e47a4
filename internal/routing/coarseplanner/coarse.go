// Package coarseplanner implements the Coarse Planner (spec §4.G): the
// strategic stage that reduces a start/end pair to an ordered list of
// waypoints before the fine planner runs per segment.
package coarseplanner

import (
	"math"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

// directDistanceThresholdKm is the great-circle cutoff below which
// start and end are planned directly with no synthesized waypoints.
const directDistanceThresholdKm = 500

// synthesisSpacingKm spaces synthesized intermediate waypoints on long
// crossings that match neither a named pair nor a regional set.
const synthesisSpacingKm = 500

// coastalNudgeDeg is how far a flagged waypoint is pushed along the
// perpendicular to its neighbours when it lands in a narrow passage
// (Open Question #1 decision, see SPEC_FULL.md).
const coastalNudgeDeg = 0.3

// Plan reduces start/end to an ordered strategic waypoint list for m,
// applying mode-aware perturbation and narrow-passage avoidance.
// idx may be nil; when non-nil it enables the narrow-passage nudge.
func Plan(start, end routing.Waypoint, m mode.Mode, idx *coastal.Index) []routing.Waypoint {
	wps := baseWaypoints(start, end, m)
	wps = orient(wps, start)
	wps = perturb(wps, m)
	if idx != nil {
		wps = avoidNarrowPassages(wps, idx)
	}
	return wps
}

// baseWaypoints applies the decision table: named pair -> hub crossing
// -> direct regional set -> straight-line synthesis -> direct fallback.
func baseWaypoints(start, end routing.Waypoint, m mode.Mode) []routing.Waypoint {
	startName := resolveName(start)
	endName := resolveName(end)

	if startName != "" && endName != "" {
		if set, ok := namedPairs[[2]string{startName, endName}]; ok {
			return selectSet(set, m)
		}
		if set, ok := namedPairs[[2]string{endName, startName}]; ok {
			reversed := selectSet(set, m)
			return reverseWaypoints(reversed)
		}
	}

	startRegion := ClassifyRegion(start.Lat, start.Lon)
	endRegion := ClassifyRegion(end.Lat, end.Lon)

	if hubCrossingPairs[[2]Region{startRegion, endRegion}] {
		return hubRoute(start, end)
	}

	if regionalPairs[[2]Region{startRegion, endRegion}] {
		return regionalRoute(start, end)
	}

	distKm := geo.Haversine(start.Lat, start.Lon, end.Lat, end.Lon)
	if distKm <= directDistanceThresholdKm {
		return []routing.Waypoint{start, end}
	}
	return synthesizeRoute(start, end, distKm)
}

func selectSet(set namedPairSet, m mode.Mode) []routing.Waypoint {
	switch m {
	case mode.Fuel:
		return cloneWaypoints(set.fuel)
	case mode.Safe, mode.ULCV:
		return cloneWaypoints(set.safe)
	default:
		return cloneWaypoints(set.optimal)
	}
}

func cloneWaypoints(in []routing.Waypoint) []routing.Waypoint {
	out := make([]routing.Waypoint, len(in))
	copy(out, in)
	return out
}

func reverseWaypoints(in []routing.Waypoint) []routing.Waypoint {
	out := make([]routing.Waypoint, len(in))
	for i, wp := range in {
		out[len(in)-1-i] = wp
	}
	return out
}

// hubRoute routes via the hub nearest the start (spec §4.G: "hub
// crossing" for region pairs that cross the subcontinent).
func hubRoute(start, end routing.Waypoint) []routing.Waypoint {
	best := hubs[0]
	bestDist := math.Inf(1)
	for _, h := range hubs {
		d := geo.Haversine(start.Lat, start.Lon, h.Lat, h.Lon)
		if d < bestDist {
			bestDist = d
			best = h
		}
	}
	hubWp := routing.Waypoint{Lat: best.Lat, Lon: best.Lon, Name: best.Name, Type: routing.WaypointPort}
	return []routing.Waypoint{start, hubWp, end}
}

// regionalRoute produces a sparse 2-midpoint route between directly
// adjacent named regions (spec §4.G "direct regional set").
func regionalRoute(start, end routing.Waypoint) []routing.Waypoint {
	mid1 := routing.Waypoint{
		Lat:  start.Lat + (end.Lat-start.Lat)/3,
		Lon:  start.Lon + (end.Lon-start.Lon)/3,
		Type: routing.WaypointOpenWater,
	}
	mid2 := routing.Waypoint{
		Lat:  start.Lat + 2*(end.Lat-start.Lat)/3,
		Lon:  start.Lon + 2*(end.Lon-start.Lon)/3,
		Type: routing.WaypointOpenWater,
	}
	return []routing.Waypoint{start, mid1, mid2, end}
}

// synthesizeRoute splits the start-end line into N =
// ceil(dist/synthesisSpacingKm) equal steps, adding N-1 interior
// waypoints interpolated linearly in lat/lon (spec §4.G).
func synthesizeRoute(start, end routing.Waypoint, distKm float64) []routing.Waypoint {
	n := int(math.Ceil(distKm / synthesisSpacingKm))
	if n < 1 {
		n = 1
	}
	out := make([]routing.Waypoint, 0, n+1)
	out = append(out, start)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		out = append(out, routing.Waypoint{
			Lat:  start.Lat + (end.Lat-start.Lat)*t,
			Lon:  start.Lon + (end.Lon-start.Lon)*t,
			Type: routing.WaypointOpenWater,
		})
	}
	out = append(out, end)
	return out
}

// orient reverses wps if its last point is closer to start than its
// first (spec §4.G: "direction is chosen by comparing the start to the
// set's endpoints and reversing if the last endpoint is closer").
func orient(wps []routing.Waypoint, start routing.Waypoint) []routing.Waypoint {
	if len(wps) < 2 {
		return wps
	}
	first, last := wps[0], wps[len(wps)-1]
	dFirst := geo.Haversine(start.Lat, start.Lon, first.Lat, first.Lon)
	dLast := geo.Haversine(start.Lat, start.Lon, last.Lat, last.Lon)
	if dLast < dFirst {
		return reverseWaypoints(wps)
	}
	return wps
}

// perturb applies the mode-specific interior-waypoint adjustment (spec
// §4.G): fuel pulls interior points 30% toward the start-end straight
// line, safe (and ulcv) pushes them 0.5 degrees along the start-end
// perpendicular, always to the same side and without checking where
// land lies, optimal is left unchanged.
func perturb(wps []routing.Waypoint, m mode.Mode) []routing.Waypoint {
	if len(wps) < 3 {
		return wps
	}
	switch m {
	case mode.Fuel:
		return pullTowardStraightLine(wps, 0.30)
	case mode.Safe, mode.ULCV:
		return pushPerpendicular(wps, 0.5)
	default:
		return wps
	}
}

func pullTowardStraightLine(wps []routing.Waypoint, fraction float64) []routing.Waypoint {
	start, end := wps[0], wps[len(wps)-1]
	a := geo.Point{Lat: start.Lat, Lon: start.Lon}
	b := geo.Point{Lat: end.Lat, Lon: end.Lon}
	out := make([]routing.Waypoint, len(wps))
	out[0] = start
	out[len(wps)-1] = end
	for i := 1; i < len(wps)-1; i++ {
		wp := wps[i]
		t := projectParamOnLine(geo.Point{Lat: wp.Lat, Lon: wp.Lon}, a, b)
		lineLat := a.Lat + (b.Lat-a.Lat)*t
		lineLon := a.Lon + (b.Lon-a.Lon)*t
		out[i] = routing.Waypoint{
			Lat:  wp.Lat + (lineLat-wp.Lat)*fraction,
			Lon:  wp.Lon + (lineLon-wp.Lon)*fraction,
			Name: wp.Name,
			Type: wp.Type,
		}
	}
	return out
}

// projectParamOnLine returns the parameter t in the line a+(b-a)*t
// nearest to p, unclamped.
func projectParamOnLine(p, a, b geo.Point) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}
	return ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
}

func pushPerpendicular(wps []routing.Waypoint, deg float64) []routing.Waypoint {
	start, end := wps[0], wps[len(wps)-1]
	dLat, dLon := geo.PerpendicularUnitVector(
		geo.Point{Lat: start.Lat, Lon: start.Lon},
		geo.Point{Lat: end.Lat, Lon: end.Lon},
	)
	out := make([]routing.Waypoint, len(wps))
	out[0] = start
	out[len(wps)-1] = end
	for i := 1; i < len(wps)-1; i++ {
		wp := wps[i]
		out[i] = routing.Waypoint{
			Lat:  wp.Lat + dLat*deg,
			Lon:  wp.Lon + dLon*deg,
			Name: wp.Name,
			Type: wp.Type,
		}
	}
	return out
}

// avoidNarrowPassages nudges any interior waypoint that lands on a
// narrow-passage cell coastalNudgeDeg along the local perpendicular to
// its neighbours, always to the same side of that line; the nudged
// position is not re-checked against the index (Open Question #1
// decision).
func avoidNarrowPassages(wps []routing.Waypoint, idx *coastal.Index) []routing.Waypoint {
	out := make([]routing.Waypoint, len(wps))
	copy(out, wps)
	for i := 1; i < len(out)-1; i++ {
		wp := out[i]
		c, ok := idx.Get(wp.Lat, wp.Lon)
		if !ok || !idx.NarrowPassage(c, 3) {
			continue
		}
		dLat, dLon := geo.PerpendicularUnitVector(
			geo.Point{Lat: out[i-1].Lat, Lon: out[i-1].Lon},
			geo.Point{Lat: out[i+1].Lat, Lon: out[i+1].Lon},
		)
		out[i].Lat = wp.Lat + dLat*coastalNudgeDeg
		out[i].Lon = wp.Lon + dLon*coastalNudgeDeg
	}
	return out
}
