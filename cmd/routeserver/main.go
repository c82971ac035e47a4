package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/regioncache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/cache/routecache"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/config"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/fuelmetrics"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/corridor"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid/store"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/httpapi"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/logger"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/observability"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/fineplanner"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/orchestrator"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/weather"

	"github.com/redis/go-redis/v9"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "routeserver",
	}, os.Stdout)
	slog.SetDefault(logger.NewSlog(&zl))
	zl.Info().Str("addr", cfg.Addr).Str("version", Version).Msg("starting routeserver")

	observability.Init(prometheus.DefaultRegisterer, os.Getenv("METRICS_ENABLED") != "false")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gridStore, err := openGridStore(ctx, cfg.GridStoreURI)
	if err != nil {
		zl.Error().Err(err).Msg("failed to open grid store")
		return 1
	}
	defer func() { _ = gridStore.Close() }()

	fetcher := weather.NewHTTPFetcher(weather.NewOutboundClient(), cfg.WeatherAPIURL, cfg.WeatherAPIKey)
	updater := weather.NewUpdater(fetcher, gridStore, &zl)
	updater.Delay = cfg.WeatherAPIDelay

	var routeRedis *redis.Client
	if cfg.GridStoreURI != "" && strings.HasPrefix(cfg.GridStoreURI, "redis://") {
		opts, err := redis.ParseURL(cfg.GridStoreURI)
		if err == nil {
			routeRedis = redis.NewClient(opts)
		}
	}

	orch := &orchestrator.Orchestrator{
		Store:        gridStore,
		CorridorLoad: corridor.New(gridStore),
		Weather:      updater,
		RegionCache:  regioncache.New(cfg.RegionCacheMaxEntries, cfg.RegionCacheTTL),
		RouteCache:   routecache.New(routeRedis, cfg.RouteCacheMaxEntries, cfg.RouteCacheTTL),
		Logger:       &zl,
		Config: orchestrator.Config{
			Resolution:               cfg.GridResolution,
			CorridorWidthOverrideDeg: cfg.CorridorWidthOverrideDeg,
			WeatherSampleRate:        cfg.WeatherSampleRate,
			EnableWeatherUpdate:      cfg.EnableRouteWeatherUpdate,
			WeatherFactorBreakpoints: cfg.WeatherFactorBreakpoints,
			VesselProfile:            fuelmetrics.PanamaxDefault.Name,
			AstarLimits:              astarLimits(cfg),
		},
	}

	if err := httpapi.Run(ctx, httpapi.ServerConfig{Addr: cfg.Addr}, &zl, orch, gridStore); err != nil {
		zl.Error().Err(err).Msg("server exited with error")
		return 1
	}
	zl.Info().Msg("server stopped")
	return 0
}

func astarLimits(cfg config.Config) fineplanner.Limits {
	limits := fineplanner.DefaultLimits()
	if cfg.MaxAstarNodes > 0 {
		limits.MaxNodes = cfg.MaxAstarNodes
	}
	if cfg.MaxAstarTime > 0 {
		limits.MaxTime = cfg.MaxAstarTime
	}
	return limits
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
