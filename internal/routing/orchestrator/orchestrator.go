// Package orchestrator stitches the Coarse Planner, Fine Planner,
// Weather Updater, and Fuel/Metric Engine into one /route request
// (spec §4.H).
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/apperr"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/regioncache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/routecache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/fuelmetrics"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/geo"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/coastal"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/corridor"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/logger"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/coarseplanner"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/cost"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/fineplanner"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/weather"

	"github.com/rs/zerolog"
)

// Config bundles the planner's tunables (spec §6 configuration keys).
type Config struct {
	Resolution               float64
	CorridorWidthOverrideDeg float64
	SmoothEpsilonDeg         float64
	WeatherSampleRate        float64
	EnableWeatherUpdate      bool
	WeatherFactorBreakpoints [3]float64
	VesselProfile            string
	AstarLimits              fineplanner.Limits
}

func DefaultConfig() Config {
	return Config{
		Resolution:       grid.DefaultResolution,
		SmoothEpsilonDeg: 0.02,
		WeatherSampleRate: 0.25,
		EnableWeatherUpdate: true,
		WeatherFactorBreakpoints: [3]float64{50, 60, 70},
		VesselProfile: "panamax",
		AstarLimits: fineplanner.DefaultLimits(),
	}
}

// Orchestrator wires together the component dependencies of §4.H.
type Orchestrator struct {
	Store        store.Store
	CorridorLoad *corridor.Loader
	Weather      *weather.Updater
	RegionCache  *regioncache.Cache
	RouteCache   *routecache.Cache
	Logger       *zerolog.Logger
	Config       Config
}

// Plan computes a full route for (start, end, mode), per the data flow
// of spec §2.
func (o *Orchestrator) Plan(ctx context.Context, start, end routing.Waypoint, m mode.Mode) (routing.Route, error) {
	l := logger.FromContext(ctx, o.Logger)
	requestStart := time.Now()

	if cached, ok := o.tryRouteCache(ctx, start, end, m); ok {
		observability.ObserveRoute(string(m), "cache_hit", time.Since(requestStart).Seconds())
		return cached, nil
	}

	coarseIdx := o.loadCoarseIndex(ctx, start, end)
	waypoints := coarseplanner.Plan(start, end, m, coarseIdx)

	var allCells []grid.Cell
	var warnings []string
	widthDeg := m.Weights().CorridorWidthDeg
	if o.Config.CorridorWidthOverrideDeg > 0 {
		widthDeg = o.Config.CorridorWidthOverrideDeg
	}

	lengthFactorKm := geo.Haversine(start.Lat, start.Lon, end.Lat, end.Lon)

	for i := 0; i < len(waypoints)-1; i++ {
		segCells, segErr := o.planSegment(ctx, waypoints[i], waypoints[i+1], m, widthDeg, lengthFactorKm)
		isLastSegment := i == len(waypoints)-2
		if segErr != nil {
			if kind, ok := apperr.As(segErr); ok && !isLastSegment && !apperr.Terminal(kind.Kind) {
				warnings = append(warnings, fmt.Sprintf("segment %d failed: %s", i, segErr.Error()))
				l.Warn().Err(segErr).Int("segment", i).Msg("segment failed, skipping")
				continue
			}
			observability.ObserveRoute(string(m), "error", time.Since(requestStart).Seconds())
			return routing.Route{}, segErr
		}
		if len(allCells) > 0 && len(segCells) > 0 {
			segCells = segCells[1:] // drop the duplicated shared waypoint cell
		}
		allCells = append(allCells, segCells...)
	}

	if len(allCells) == 0 {
		observability.ObserveRoute(string(m), "error", time.Since(requestStart).Seconds())
		return routing.Route{}, apperr.New(apperr.NoPath, "no segment produced a usable path")
	}

	smoothed := fineplanner.Smooth(allCells, o.smoothEpsilon())

	route, err := o.finalize(ctx, smoothed, m, warnings)
	if err != nil {
		observability.ObserveRoute(string(m), "error", time.Since(requestStart).Seconds())
		return routing.Route{}, err
	}

	o.putRouteCache(ctx, start, end, m, route)
	observability.ObserveRoute(string(m), "ok", time.Since(requestStart).Seconds())
	return route, nil
}

func (o *Orchestrator) smoothEpsilon() float64 {
	if o.Config.SmoothEpsilonDeg > 0 {
		return o.Config.SmoothEpsilonDeg
	}
	return 0.02
}

// planSegment loads the corridor (through the region cache when
// available), snaps both endpoints to water, and runs the fine
// planner.
func (o *Orchestrator) planSegment(ctx context.Context, from, to routing.Waypoint, m mode.Mode, widthDeg, lengthFactorKm float64) ([]grid.Cell, error) {
	cells, err := o.loadCorridor(ctx, from, to, widthDeg)
	if err != nil {
		return nil, apperr.Wrap(apperr.GridUnavailable, "corridor load failed", err)
	}
	observability.ObserveCorridor(string(m), len(cells))

	idx := coastal.NewIndex(cells, o.Config.Resolution)
	annotate(cells, idx, o.Config.Resolution)
	// NewIndex copies the cells, so rebuild it to carry the annotations.
	idx = coastal.NewIndex(cells, o.Config.Resolution)

	startCell, err := fineplanner.Snap(idx, from.Lat, from.Lon, o.Config.Resolution)
	if err != nil {
		return nil, err
	}
	goalCell, err := fineplanner.Snap(idx, to.Lat, to.Lon, o.Config.Resolution)
	if err != nil {
		return nil, err
	}

	limits := o.Config.AstarLimits
	if limits.MaxNodes <= 0 {
		limits = fineplanner.DefaultLimits()
	}

	result, err := fineplanner.Plan(fineplanner.Params{
		Start: startCell, Goal: goalCell, Mode: m, Index: idx,
		Resolution: o.Config.Resolution, LengthFactorKm: lengthFactorKm, Limits: limits,
	})
	if err != nil {
		observability.ObserveAstar(string(m), "no_path", 0)
		return nil, apperr.Wrap(apperr.SegmentFailed, "fine planner failed for segment", err)
	}
	observability.ObserveAstar(string(m), "ok", result.NodesExpanded)
	return result.Path, nil
}

func (o *Orchestrator) loadCorridor(ctx context.Context, from, to routing.Waypoint, widthDeg float64) ([]grid.Cell, error) {
	b := corridorBounds(from, to, widthDeg)
	if o.RegionCache != nil {
		if cells, ok := o.RegionCache.Get(b); ok {
			return cells, nil
		}
	}
	cells, err := o.CorridorLoad.Load(ctx, from, to, widthDeg)
	if err != nil {
		return nil, err
	}
	if o.RegionCache != nil {
		o.RegionCache.Put(b, cells)
	}
	return cells, nil
}

// coarseIndexMarginDeg widens the bounding box used to build the
// coarse-stage coastal index, wide enough to cover the narrow-passage
// nudge radius around any synthesized interior waypoint.
const coarseIndexMarginDeg = 1.0

// loadCoarseIndex builds a lightweight coastal index over the
// start/end bounding box so the coarse planner can nudge waypoints out
// of narrow passages (spec §4.G) before any per-segment corridor is
// loaded. Returns nil on a load failure or empty result, in which case
// the coarse planner skips the nudge and the fine planner's own
// land-avoidance remains the only guarantee.
func (o *Orchestrator) loadCoarseIndex(ctx context.Context, start, end routing.Waypoint) *coastal.Index {
	b := corridorBounds(start, end, coarseIndexMarginDeg)
	cells, err := o.Store.CellsInRect(ctx, b)
	if err != nil || len(cells) == 0 {
		return nil
	}
	return coastal.NewIndex(cells, o.Config.Resolution)
}

func corridorBounds(from, to routing.Waypoint, widthDeg float64) grid.Bounds {
	latMin, latMax := from.Lat, to.Lat
	if latMin > latMax {
		latMin, latMax = latMax, latMin
	}
	lonMin, lonMax := from.Lon, to.Lon
	if lonMin > lonMax {
		lonMin, lonMax = lonMax, lonMin
	}
	return grid.Bounds{
		LatMin: latMin - widthDeg, LatMax: latMax + widthDeg,
		LonMin: lonMin - widthDeg, LonMax: lonMax + widthDeg,
	}
}

// annotate fills each cell's derived scoring fields from the coastal
// analyzer, mirroring what the fine planner expects on cells it reads
// via idx (spec §4.D feeding §4.E).
func annotate(cells []grid.Cell, idx *coastal.Index, resolution float64) {
	for i := range cells {
		c := &cells[i]
		if c.IsLand {
			continue
		}
		c.DistanceToLand = idx.DistanceToLand(*c, 5)
		c.NearCoast = idx.IsNearCoast(*c, 1)
		c.SafetyScore = cost.SafetyScore(*c)
		c.FuelEfficiencyScore = cost.FuelEfficiencyScore(*c)
	}
}

// finalize runs weather sampling under an errgroup bound to ctx, then
// computes the fuel/metric summary from the sampled path; weather only
// affects reported metrics once the path geometry is fixed (spec §5).
func (o *Orchestrator) finalize(ctx context.Context, cells []grid.Cell, m mode.Mode, warnings []string) (routing.Route, error) {
	distKm := 0.0
	for i := 1; i < len(cells); i++ {
		distKm += geo.Haversine(cells[i-1].Lat, cells[i-1].Lon, cells[i].Lat, cells[i].Lon)
	}

	var samples []weather.Sample
	if o.Weather != nil && o.Config.EnableWeatherUpdate {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			samples = o.Weather.SamplePath(gctx, cells, o.Config.WeatherSampleRate)
			return nil
		})
		if err := g.Wait(); err != nil {
			return routing.Route{}, err
		}
	}

	pathPoints := make([]routing.PathPoint, len(cells))
	for i, c := range cells {
		pathPoints[i] = routing.PathPoint{Lat: c.Lat, Lon: c.Lon, Weather: c.Weather}
	}
	for _, s := range samples {
		if s.Weather != nil && s.Index < len(pathPoints) {
			pathPoints[s.Index].Weather = s.Weather
		}
	}

	summary, alerts := o.buildSummary(pathPoints, cells, distKm, m)

	coverage := 0.0
	if len(samples) > 0 {
		hits := 0
		for _, s := range samples {
			if s.Weather != nil {
				hits++
			}
		}
		coverage = float64(hits) / float64(len(samples))
	}
	summary.DataCoverage = coverage
	observability.ObserveWeatherCoverage(coverage)

	if coverage < 1.0 && len(samples) > 0 {
		warnings = append(warnings, "some weather samples failed; reduced data coverage")
	}

	return routing.Route{
		Success:      true,
		Path:         pathPoints,
		Summary:      summary,
		Alerts:       alerts,
		Warnings:     warnings,
		CalculatedAt: time.Now(),
	}, nil
}

func (o *Orchestrator) buildSummary(points []routing.PathPoint, cells []grid.Cell, distKm float64, m mode.Mode) (routing.Summary, []routing.Alert) {
	profile := fuelmetrics.ResolveProfile(o.Config.VesselProfile)

	var sumWind, maxWind, sumWave, maxWave, sumTemp, sumVis float64
	var weatherSamples int
	var sumSafety, sumFuelEff float64
	var alerts []routing.Alert

	for i, p := range points {
		if i < len(cells) {
			sumSafety += cells[i].SafetyScore
			sumFuelEff += cells[i].FuelEfficiencyScore
		}
		if p.Weather == nil {
			continue
		}
		weatherSamples++
		sumWind += p.Weather.WindSpeed
		sumWave += p.Weather.WaveHeight
		sumTemp += p.Weather.Temperature
		sumVis += p.Weather.Visibility
		if p.Weather.WindSpeed > maxWind {
			maxWind = p.Weather.WindSpeed
		}
		if p.Weather.WaveHeight > maxWave {
			maxWave = p.Weather.WaveHeight
		}
		if a := fuelmetrics.EvaluateWaypoint(i, p.Lat, p.Lon, p.Weather); a != nil {
			alerts = append(alerts, *a)
		}
	}

	avgWind, avgWave, avgTemp, avgVis := 0.0, 0.0, 0.0, 0.0
	weatherIndex := 0.0
	if weatherSamples > 0 {
		avgWind = sumWind / float64(weatherSamples)
		avgWave = sumWave / float64(weatherSamples)
		avgTemp = sumTemp / float64(weatherSamples)
		avgVis = sumVis / float64(weatherSamples)
		weatherIndex = fuelmetrics.WeatherIndex(avgWind, avgWave, avgVis)
	}

	fuel := fuelmetrics.Compute(distKm, m, weatherIndex, profile, o.Config.WeatherFactorBreakpoints)

	n := len(cells)
	safetyPct, fuelEffPct := 100.0, 100.0
	if n > 0 {
		safetyPct = 100.0 * sumSafety / float64(n)
		fuelEffPct = 100.0 * sumFuelEff / float64(n)
	}

	return routing.Summary{
		DistanceKm:       distKm,
		DurationHours:    fuel.DurationHours,
		FuelTonsTotal:    fuel.TotalTons,
		FuelTonsMain:     fuel.MainTons,
		FuelTonsAux:      fuel.AuxTons,
		FuelCostUSD:      fuel.CostUSD,
		SafetyPct:        safetyPct,
		FuelEfficiencyPct: fuelEffPct,
		AvgWind: avgWind, MaxWind: maxWind,
		AvgWave: avgWave, MaxWave: maxWave,
		AvgTemperature: avgTemp,
		AvgVisibility:  avgVis,
		Mode:           string(m),
		PointsCount:    len(points),
		SpeedFactor:        fuel.SpeedFactor,
		WeatherFactorValue: fuel.WeatherFactor,
	}, alerts
}

func (o *Orchestrator) tryRouteCache(ctx context.Context, start, end routing.Waypoint, m mode.Mode) (routing.Route, bool) {
	if o.RouteCache == nil {
		return routing.Route{}, false
	}
	fromHub, ok1 := routecache.NearestHub(start.Lat, start.Lon)
	toHub, ok2 := routecache.NearestHub(end.Lat, end.Lon)
	if !ok1 || !ok2 {
		return routing.Route{}, false
	}
	return o.RouteCache.Get(ctx, fromHub.Name, toHub.Name, m)
}

func (o *Orchestrator) putRouteCache(ctx context.Context, start, end routing.Waypoint, m mode.Mode, r routing.Route) {
	if o.RouteCache == nil {
		return
	}
	fromHub, ok1 := routecache.NearestHub(start.Lat, start.Lon)
	toHub, ok2 := routecache.NearestHub(end.Lat, end.Lon)
	if !ok1 || !ok2 {
		return
	}
	o.RouteCache.Put(ctx, fromHub.Name, toHub.Name, m, r)
}

