// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr     string
	LogLevel string

	GridResolution float64
	GridStoreURI   string

	WeatherSampleRate         float64
	WeatherAPIDelay           time.Duration
	EnableRouteWeatherUpdate  bool
	WeatherAPIURL             string
	WeatherAPIKey             string
	WeatherFetchConcurrency  int
	WeatherFetchTimeout       time.Duration

	MaxAstarNodes int
	MaxAstarTime  time.Duration

	RegionCacheTTL         time.Duration
	RegionCacheMaxEntries  int
	RouteCacheTTL          time.Duration
	RouteCacheMaxEntries   int

	CorridorWidthOverrideDeg float64

	WeatherFactorBreakpoints [3]float64 // 50/60/70 equivalents, ascending
}

func FromEnv() Config {
	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		GridResolution: getfloat("GRID_RESOLUTION", 0.2),
		GridStoreURI:   getenv("GRID_STORE_URI", "postgres://localhost:5432/jalmarg?sslmode=disable"),

		WeatherSampleRate:        getfloat("WEATHER_SAMPLE_RATE", 0.25),
		WeatherAPIDelay:          getduration("WEATHER_API_DELAY_MS", 300*time.Millisecond),
		EnableRouteWeatherUpdate: getbool("ENABLE_ROUTE_WEATHER_UPDATE", true),
		WeatherAPIURL:            getenv("WEATHER_API_URL", "https://api.open-meteo.com/v1/marine"),
		WeatherAPIKey:            getenv("WEATHER_API_KEY", ""),
		WeatherFetchConcurrency: getint("WEATHER_FETCH_CONCURRENCY", 4),
		WeatherFetchTimeout:      getduration("WEATHER_FETCH_TIMEOUT_MS", 5*time.Second),

		MaxAstarNodes: getint("MAX_ASTAR_NODES", 100_000),
		MaxAstarTime:  getduration("MAX_ASTAR_MS", 3*time.Minute),

		RegionCacheTTL:        getduration("REGION_CACHE_TTL_MS", time.Hour),
		RegionCacheMaxEntries: getint("REGION_CACHE_MAX_ENTRIES", 10),
		RouteCacheTTL:         getduration("ROUTE_CACHE_TTL_MS", 24*time.Hour),
		RouteCacheMaxEntries:  getint("ROUTE_CACHE_MAX_ENTRIES", 64),

		CorridorWidthOverrideDeg: getfloat("ASTAR_CORRIDOR_WIDTH_OVERRIDE_DEG", 0),

		WeatherFactorBreakpoints: [3]float64{50, 60, 70},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		// allow plain milliseconds for *_MS keys as well as Go duration strings
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}
