// Command gridwarm pre-computes routes between every named hub pair,
// for every mode, and populates the route cache (spec §6: "operational
// tooling ... cache warm-up") so the first live request against a hub
// pair is never a cold miss.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/regioncache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/routecache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/config"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/corridor"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/logger"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/orchestrator"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/weather"
)

func main() {
	os.Exit(run())
}

var modes = []mode.Mode{mode.Fuel, mode.Optimal, mode.Safe, mode.ULCV}

func run() int {
	flag.Parse()
	cfg := config.FromEnv()
	zl := logger.Build(logger.Config{Level: cfg.LogLevel, Component: "gridwarm"}, os.Stdout)
	slog.SetDefault(logger.NewSlog(&zl))

	ctx := context.Background()

	gridStore, err := openGridStore(ctx, cfg.GridStoreURI)
	if err != nil {
		zl.Error().Err(err).Msg("failed to open grid store")
		return 1
	}
	defer func() { _ = gridStore.Close() }()

	var routeRedis *redis.Client
	if strings.HasPrefix(cfg.GridStoreURI, "redis://") {
		if opts, err := redis.ParseURL(cfg.GridStoreURI); err == nil {
			routeRedis = redis.NewClient(opts)
		}
	}

	orch := &orchestrator.Orchestrator{
		Store:        gridStore,
		CorridorLoad: corridor.New(gridStore),
		Weather:      weather.NewUpdater(noopFetcher{}, gridStore, &zl),
		RegionCache:  regioncache.New(cfg.RegionCacheMaxEntries, cfg.RegionCacheTTL),
		RouteCache:   routecache.New(routeRedis, cfg.RouteCacheMaxEntries, cfg.RouteCacheTTL),
		Logger:       &zl,
		Config: func() orchestrator.Config {
			c := orchestrator.DefaultConfig()
			c.Resolution = cfg.GridResolution
			c.EnableWeatherUpdate = false
			return c
		}(),
	}

	failures := 0
	for i, from := range routecache.Hubs {
		for j, to := range routecache.Hubs {
			if i == j {
				continue
			}
			for _, m := range modes {
				start := routing.Waypoint{Lat: from.Lat, Lon: from.Lon, Name: from.Name, Type: routing.WaypointDeparture}
				end := routing.Waypoint{Lat: to.Lat, Lon: to.Lon, Name: to.Name, Type: routing.WaypointArrival}
				if _, err := orch.Plan(ctx, start, end, m); err != nil {
					zl.Warn().Err(err).Str("from", from.Name).Str("to", to.Name).Str("mode", string(m)).Msg("warm-up route failed")
					failures++
					continue
				}
				zl.Info().Str("from", from.Name).Str("to", to.Name).Str("mode", string(m)).Msg("warmed route")
			}
		}
	}

	if failures > 0 {
		zl.Error().Int("failures", failures).Msg("grid warm-up completed with failures")
		return 1
	}
	zl.Info().Msg("grid warm-up complete")
	return 0
}

func openGridStore(ctx context.Context, uri string) (store.Store, error) {
	switch {
	case strings.HasPrefix(uri, "redis://"):
		return store.NewRedisStore(ctx, strings.TrimPrefix(uri, "redis://"))
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return store.NewPostgresStore(ctx, uri)
	default:
		return store.NewMemoryStore(nil), nil
	}
}

// noopFetcher disables live weather fetches during warm-up: only path
// geometry and fuel/cost metrics are cached, not point-in-time weather.
type noopFetcher struct{}

func (noopFetcher) Fetch(_ context.Context, _, _ float64) (grid.Weather, error) {
	return grid.Weather{}, nil
}
