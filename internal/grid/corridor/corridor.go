// Package corridor implements the Corridor Loader (spec §4.C): the
// only component permitted to touch the persistent Grid Store during a
// route computation.
package corridor

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
)

// Loader reads cells within an expanded rectangle around a segment.
type Loader struct {
	Store store.Store
}

func New(s store.Store) *Loader { return &Loader{Store: s} }

// Load returns the union of cells within widthDeg of the rectangle
// spanning wp1-wp2, deduplicated by (round(lat,1), round(lon,1)).
// Concurrent band reads are merged deterministically (spec §5).
func (l *Loader) Load(ctx context.Context, wp1, wp2 routing.Waypoint, widthDeg float64) ([]grid.Cell, error) {
	bounds := expandedBounds(wp1, wp2, widthDeg)

	bands := splitBands(bounds, bandCount())
	results := make([][]grid.Cell, len(bands))

	var wg sync.WaitGroup
	errCh := make(chan error, len(bands))
	for i, band := range bands {
		wg.Add(1)
		go func(i int, band grid.Bounds) {
			defer wg.Done()
			cells, err := l.Store.CellsInRect(ctx, band)
			if err != nil {
				errCh <- fmt.Errorf("load corridor band %d: %w", i, err)
				return
			}
			results[i] = cells
		}(i, band)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[[2]int64]struct{})
	var out []grid.Cell
	for _, cells := range results {
		for _, c := range cells {
			key := [2]int64{
				int64(math.Round(c.Lat * 10)),
				int64(math.Round(c.Lon * 10)),
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Lat != out[j].Lat {
			return out[i].Lat < out[j].Lat
		}
		return out[i].Lon < out[j].Lon
	})
	return out, nil
}

func expandedBounds(wp1, wp2 routing.Waypoint, widthDeg float64) grid.Bounds {
	latMin := math.Min(wp1.Lat, wp2.Lat) - widthDeg
	latMax := math.Max(wp1.Lat, wp2.Lat) + widthDeg
	lonMin := math.Min(wp1.Lon, wp2.Lon) - widthDeg
	lonMax := math.Max(wp1.Lon, wp2.Lon) + widthDeg
	return grid.Bounds{LatMin: latMin, LatMax: latMax, LonMin: lonMin, LonMax: lonMax}
}

func bandCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// splitBands divides b into n horizontal latitude bands so corridor
// reads can run concurrently (spec §5: "concurrent chunk reads where
// the store supports them").
func splitBands(b grid.Bounds, n int) []grid.Bounds {
	if n <= 1 {
		return []grid.Bounds{b}
	}
	height := (b.LatMax - b.LatMin) / float64(n)
	if height <= 0 {
		return []grid.Bounds{b}
	}
	bands := make([]grid.Bounds, 0, n)
	for i := 0; i < n; i++ {
		lo := b.LatMin + float64(i)*height
		hi := lo + height
		if i == n-1 {
			hi = b.LatMax
		}
		bands = append(bands, grid.Bounds{LatMin: lo, LatMax: hi, LonMin: b.LonMin, LonMax: b.LonMax})
	}
	return bands
}
