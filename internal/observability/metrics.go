// Package observability registers and exposes the prometheus metrics
// for the route planner.
package observability

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var enabled atomic.Bool

func Init(r prometheus.Registerer, isEnabled bool) {
	enabled.Store(isEnabled)
	if !isEnabled || r == nil {
		return
	}
	initCollectors(r)
}

func Enabled() bool { return enabled.Load() }

var (
	routeRequestsTotal     *prometheus.CounterVec
	routeRequestDuration    *prometheus.HistogramVec
	astarNodesExpanded      *prometheus.HistogramVec
	astarOutcomeTotal       *prometheus.CounterVec
	corridorCellsLoaded     *prometheus.HistogramVec
	weatherFetchTotal       *prometheus.CounterVec
	weatherFetchDuration    prometheus.Histogram
	weatherCoverageRatio    prometheus.Histogram
	cacheOpTotal            *prometheus.CounterVec
	cacheOpDuration         *prometheus.HistogramVec
	regionCacheHitsTotal    *prometheus.CounterVec
	routeCacheHitsTotal     *prometheus.CounterVec
)

func initCollectors(r prometheus.Registerer) {
	routeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_requests_total", Help: "Total /route requests by mode and outcome."},
		[]string{"mode", "outcome"},
	)
	routeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_request_duration_seconds", Help: "End to end /route latency.", Buckets: prometheus.ExponentialBuckets(0.05, 2, 12)},
		[]string{"mode"},
	)
	astarNodesExpanded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "astar_nodes_expanded", Help: "Nodes expanded per fine-planner segment.", Buckets: prometheus.ExponentialBuckets(16, 2, 14)},
		[]string{"mode"},
	)
	astarOutcomeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "astar_outcome_total", Help: "Fine planner segment outcomes."},
		[]string{"mode", "outcome"},
	)
	corridorCellsLoaded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "corridor_cells_loaded", Help: "Cells loaded per corridor.", Buckets: prometheus.ExponentialBuckets(8, 2, 14)},
		[]string{"mode"},
	)
	weatherFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "weather_fetch_total", Help: "Weather sample fetch attempts by result."},
		[]string{"result"},
	)
	weatherFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "weather_fetch_duration_seconds", Help: "Duration of a single weather fetch.", Buckets: prometheus.ExponentialBuckets(0.01, 2, 12)},
	)
	weatherCoverageRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "weather_data_coverage_ratio", Help: "Fraction of sampled points with usable weather.", Buckets: prometheus.LinearBuckets(0, 0.1, 11)},
	)
	cacheOpTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cache_op_total", Help: "Cache/store operations by op and result."},
		[]string{"op", "result"},
	)
	cacheOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "cache_op_duration_seconds", Help: "Duration of cache/store operations.", Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14)},
		[]string{"op"},
	)
	regionCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "region_cache_hits_total", Help: "Region chunk cache hit/miss."},
		[]string{"result"},
	)
	routeCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_cache_hits_total", Help: "Precomputed hub route cache hit/miss."},
		[]string{"result"},
	)

	r.MustRegister(
		routeRequestsTotal, routeRequestDuration,
		astarNodesExpanded, astarOutcomeTotal, corridorCellsLoaded,
		weatherFetchTotal, weatherFetchDuration, weatherCoverageRatio,
		cacheOpTotal, cacheOpDuration,
		regionCacheHitsTotal, routeCacheHitsTotal,
	)
}

func ObserveRoute(mode, outcome string, seconds float64) {
	if !Enabled() {
		return
	}
	routeRequestsTotal.WithLabelValues(mode, outcome).Inc()
	routeRequestDuration.WithLabelValues(mode).Observe(seconds)
}

func ObserveAstar(mode, outcome string, nodesExpanded int) {
	if !Enabled() {
		return
	}
	astarOutcomeTotal.WithLabelValues(mode, outcome).Inc()
	astarNodesExpanded.WithLabelValues(mode).Observe(float64(nodesExpanded))
}

func ObserveCorridor(mode string, cells int) {
	if !Enabled() {
		return
	}
	corridorCellsLoaded.WithLabelValues(mode).Observe(float64(cells))
}

func ObserveWeatherFetch(result string, d time.Duration) {
	if !Enabled() {
		return
	}
	weatherFetchTotal.WithLabelValues(result).Inc()
	weatherFetchDuration.Observe(d.Seconds())
}

func ObserveWeatherCoverage(ratio float64) {
	if !Enabled() {
		return
	}
	weatherCoverageRatio.Observe(ratio)
}

func ObserveCacheOp(op string, err error, seconds float64) {
	if !Enabled() {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheOpTotal.WithLabelValues(op, result).Inc()
	cacheOpDuration.WithLabelValues(op).Observe(seconds)
}

func ObserveRegionCache(hit bool) {
	if !Enabled() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	regionCacheHitsTotal.WithLabelValues(result).Inc()
}

func ObserveRouteCache(hit bool) {
	if !Enabled() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	routeCacheHitsTotal.WithLabelValues(result).Inc()
}
