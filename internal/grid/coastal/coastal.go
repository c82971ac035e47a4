// Package coastal implements the Land/Coast Analyzer (spec §4.D): ring
// scans and segment sampling over the hash index built from a loaded
// corridor.
package coastal

import (
	"math"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

// Index is the fine planner's own hash index keyed by
// (round(lat*1e4), round(lon*1e4)) (spec §4.A).
type Index struct {
	byKey map[grid.CellKey]grid.Cell
	res   float64
}

func NewIndex(cells []grid.Cell, resolution float64) *Index {
	m := make(map[grid.CellKey]grid.Cell, len(cells))
	for _, c := range cells {
		m[c.Key()] = c
	}
	return &Index{byKey: m, res: resolution}
}

func (idx *Index) keyFor(lat, lon float64) grid.CellKey {
	return grid.Cell{
		Lat: grid.RoundToResolution(lat, idx.res),
		Lon: grid.RoundToResolution(lon, idx.res),
	}.Key()
}

// Get returns the cell at (lat, lon) aligned to the grid resolution
// and whether it was found in the loaded set.
func (idx *Index) Get(lat, lon float64) (grid.Cell, bool) {
	c, ok := idx.byKey[idx.keyFor(lat, lon)]
	return c, ok
}

const unknownRadiusSentinel = -1 // ">radius" per spec §4.D

// DistanceToLand performs a breadth-first-by-ring scan out to radius
// cells and returns the first ring containing land, or
// unknownRadiusSentinel if none is found within radius.
func (idx *Index) DistanceToLand(c grid.Cell, radius int) int {
	if radius <= 0 {
		radius = 5
	}
	for ring := 1; ring <= radius; ring++ {
		for dLat := -ring; dLat <= ring; dLat++ {
			for dLon := -ring; dLon <= ring; dLon++ {
				if maxAbs(dLat, dLon) != ring {
					continue // only the outer shell of this ring
				}
				lat := c.Lat + float64(dLat)*idx.res
				lon := c.Lon + float64(dLon)*idx.res
				if n, ok := idx.Get(lat, lon); ok && n.IsLand {
					return ring
				}
			}
		}
	}
	return unknownRadiusSentinel
}

func maxAbs(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}

// IsNearCoast reports whether any 8-neighbour within radius is land.
func (idx *Index) IsNearCoast(c grid.Cell, radius int) bool {
	if radius <= 0 {
		radius = 1
	}
	for dLat := -radius; dLat <= radius; dLat++ {
		for dLon := -radius; dLon <= radius; dLon++ {
			if dLat == 0 && dLon == 0 {
				continue
			}
			lat := c.Lat + float64(dLat)*idx.res
			lon := c.Lon + float64(dLon)*idx.res
			if n, ok := idx.Get(lat, lon); ok && n.IsLand {
				return true
			}
		}
	}
	return false
}

// directions used by NarrowPassage: N, S, E, W, and the two diagonal
// pairs, expressed as opposing (dLat, dLon) unit steps.
var oppositePairs = [][2][2]int{
	{{1, 0}, {-1, 0}},   // N/S
	{{0, 1}, {0, -1}},   // E/W
	{{1, 1}, {-1, -1}},  // NE/SW
	{{1, -1}, {-1, 1}},  // NW/SE
}

// NarrowPassage reports whether land (or a missing cell) is present in
// two opposite directions within D cells, in any of the four axis
// pairs (spec §4.D). Cells flagged here are excluded for large-vessel
// routing.
func (idx *Index) NarrowPassage(c grid.Cell, depth int) bool {
	if depth <= 0 {
		depth = 3
	}
	for _, pair := range oppositePairs {
		if idx.blockedWithin(c, pair[0], depth) && idx.blockedWithin(c, pair[1], depth) {
			return true
		}
	}
	return false
}

func (idx *Index) blockedWithin(c grid.Cell, step [2]int, depth int) bool {
	for i := 1; i <= depth; i++ {
		lat := c.Lat + float64(step[0]*i)*idx.res
		lon := c.Lon + float64(step[1]*i)*idx.res
		n, ok := idx.Get(lat, lon)
		if !ok || n.IsLand {
			return true
		}
	}
	return false
}

// SegmentCrossesLand samples the segment at N = max(3, ceil(dist/R)*3)
// evenly spaced points; a sampled point that is missing or land makes
// the segment invalid (spec §4.D).
func (idx *Index) SegmentCrossesLand(lat1, lon1, lat2, lon2 float64) bool {
	dist := geo.Haversine(lat1, lon1, lat2, lon2)
	n := int(math.Ceil(dist/idx.res)) * 3
	if n < 3 {
		n = 3
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		lat := lat1 + (lat2-lat1)*t
		lon := lon1 + (lon2-lon1)*t
		c, ok := idx.Get(lat, lon)
		if !ok || c.IsLand {
			return true
		}
	}
	return false
}
