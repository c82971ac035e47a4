package fineplanner

import (
	"math"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/apperr"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
)

// Snap finds the nearest navigable, non-narrow-passage cell to (lat,
// lon) within 1 degree, per spec §4.F. Returns apperr.OffGrid if none
// exists.
func Snap(idx *coastal.Index, lat, lon, resolution float64) (grid.Cell, error) {
	snapLat := grid.RoundToResolution(lat, resolution)
	snapLon := grid.RoundToResolution(lon, resolution)

	if c, ok := idx.Get(snapLat, snapLon); ok && c.Navigable() && !idx.NarrowPassage(c, 3) {
		return c, nil
	}

	const maxDeg = 1.0
	maxRing := int(math.Ceil(maxDeg / resolution))

	var best grid.Cell
	bestDist := math.Inf(1)
	found := false

	for ring := 0; ring <= maxRing; ring++ {
		for dLat := -ring; dLat <= ring; dLat++ {
			for dLon := -ring; dLon <= ring; dLon++ {
				if maxAbsInt(dLat, dLon) != ring {
					continue
				}
				cLat := snapLat + float64(dLat)*resolution
				cLon := snapLon + float64(dLon)*resolution
				c, ok := idx.Get(cLat, cLon)
				if !ok || !c.Navigable() || idx.NarrowPassage(c, 3) {
					continue
				}
				d := geo.Haversine(lat, lon, cLat, cLon)
				if d < bestDist {
					bestDist = d
					best = c
					found = true
				}
			}
		}
		if found {
			return best, nil
		}
	}
	return grid.Cell{}, apperr.New(apperr.OffGrid, "no navigable water cell within 1 degree")
}

func maxAbsInt(a, b int) int {
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
