// Package keys defines the cache key formats used by the region chunk
// cache and the precomputed route cache (spec §4.K).
package keys

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

const regionPrecision = 0.1

// RegionKey quantizes b to 0.1 degree precision and returns a stable
// string key for the region chunk cache (spec §4.K).
func RegionKey(b grid.Bounds) string {
	return fmt.Sprintf("region:%s:%s:%s:%s",
		quantize(b.LatMin), quantize(b.LatMax), quantize(b.LonMin), quantize(b.LonMax))
}

func quantize(v float64) string {
	q := math.Round(v/regionPrecision) * regionPrecision
	return fmt.Sprintf("%.1f", q)
}

// RouteKey identifies one precomputed hub-to-hub route (spec §4.K).
func RouteKey(fromHub, toHub string, m mode.Mode) string {
	return fmt.Sprintf("route:%s:%s:%s", fromHub, toHub, m)
}

// HashString is a deterministic, short content hash used where a
// fixed-width suffix is preferable to the raw names (e.g. Redis key
// fan-out across shards).
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}
