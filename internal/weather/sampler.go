package weather

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/logger"
)

// maxConcurrentFetches bounds in-flight weather API calls (spec §4.I).
const maxConcurrentFetches = 4

// fetchTimeout bounds a single sample's round trip.
const fetchTimeout = 5 * time.Second

// Sample is one path point's weather, or nil if the fetch failed.
type Sample struct {
	Index   int
	Weather *grid.Weather
}

// Updater samples weather along a path at sampleRate and writes
// fetched samples back to the Grid Store without blocking the caller.
type Updater struct {
	Fetcher Fetcher
	Store   store.Store
	Logger  *zerolog.Logger

	// Delay staggers successive fetch dispatches to obey the external
	// API's rate limit (spec §4.I); zero disables the stagger.
	Delay time.Duration
}

func NewUpdater(f Fetcher, s store.Store, l *zerolog.Logger) *Updater {
	return &Updater{Fetcher: f, Store: s, Logger: l}
}

// SamplePath selects indices to sample per spec §4.I (0%, 25%, 50%,
// 75%, 100% always; the remainder of sampleRate filled by an even
// stride) then fetches each concurrently, bounded by
// maxConcurrentFetches, via a channel semaphore.
func (u *Updater) SamplePath(ctx context.Context, path []grid.Cell, sampleRate float64) []Sample {
	if len(path) == 0 {
		return nil
	}
	indices := sampleIndices(len(path), sampleRate)

	results := make([]Sample, len(indices))
	semaphore := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup

	for i, idx := range indices {
		if i > 0 && u.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(u.Delay):
			}
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(i, idx int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			w, err := u.Fetcher.Fetch(fctx, path[idx].Lat, path[idx].Lon)
			l := logger.FromContext(ctx, u.Logger)
			if err != nil {
				l.Warn().Err(err).Int("index", idx).Msg("weather fetch failed")
				results[i] = Sample{Index: idx}
				return
			}
			results[i] = Sample{Index: idx, Weather: &w}
			u.writeThrough(path[idx].Lat, path[idx].Lon, w)
		}(i, idx)
	}
	wg.Wait()
	return results
}

// writeThrough persists a fetched sample to the Grid Store in the
// background; a cache-population failure must never fail the request
// that triggered it (spec §4.I).
func (u *Updater) writeThrough(lat, lon float64, w grid.Weather) {
	if u.Store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = u.Store.UpsertWeather(ctx, lat, lon, w)
	}()
}

// sampleIndices always includes the first, quartiles, and last point,
// then adds an even stride over the remainder of the path until
// sampleRate of all points are covered.
func sampleIndices(n int, sampleRate float64) []int {
	if n == 1 {
		return []int{0}
	}
	set := map[int]bool{
		0:                   true,
		(n - 1) / 4:         true,
		(n - 1) / 2:         true,
		3 * (n - 1) / 4:     true,
		n - 1:               true,
	}
	target := int(float64(n) * sampleRate)
	if target > len(set) {
		stride := n / (target - len(set) + 1)
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < n && len(set) < target; i += stride {
			set[i] = true
		}
	}
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	// deterministic ascending order for reproducible sample ordering
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
