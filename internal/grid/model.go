// Package grid defines the lat/lon grid cell model (spec §3).
package grid

import (
	"math"
	"time"
)

// Zone is the optional land-use classification of a water cell.
type Zone string

const (
	ZoneUnset  Zone = ""
	ZoneOpen   Zone = "open_water"
	ZoneCoast  Zone = "coastal"
	ZonePort   Zone = "port"
)

// Weather is the optional per-cell weather sub-record (spec §3).
type Weather struct {
	Temperature   float64
	WindSpeed     float64
	WindDirection float64
	WindGusts     float64
	WaveHeight    float64
	WaveDirection float64
	WavePeriod    float64
	Visibility    float64
	CloudCover    float64
	Precipitation float64
	Timestamp     time.Time
}

// Cell is an immutable-after-ingest grid record identified by (lat,
// lon) rounded to the grid resolution. Kept as a fixed struct with
// explicit nullable fields, never treated polymorphically (design
// note #1).
type Cell struct {
	Lat, Lon float64
	IsLand   bool
	Obstacle bool
	Zone     Zone
	Weather  *Weather

	// Derived at query time by the coastal analyzer; zero value means
	// "not yet computed" and callers must treat DistanceToLand==0 with
	// NearCoast==false as "unknown", not "adjacent to land".
	DistanceToLand      int
	NearCoast           bool
	CoastalPenalty      float64
	SafetyScore         float64
	FuelEfficiencyScore float64
}

// Navigable reports whether the cell can be routed through at all,
// independent of mode-specific penalties.
func (c Cell) Navigable() bool {
	return !c.IsLand && !c.Obstacle
}

// Key rounds (lat, lon) to 4 decimal places, the hash-index key used by
// the fine planner and the coastal analyzer (spec §4.A, §4.D).
func (c Cell) Key() CellKey {
	return CellKey{
		LatE4: int64(math.Round(c.Lat * 1e4)),
		LonE4: int64(math.Round(c.Lon * 1e4)),
	}
}

// CellKey is a comparable, map-friendly cell identity.
type CellKey struct {
	LatE4, LonE4 int64
}

// Bounds is an axis-aligned lat/lon rectangle.
type Bounds struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

func (b Bounds) Intersects(o Bounds) bool {
	return b.LatMin <= o.LatMax && b.LatMax >= o.LatMin &&
		b.LonMin <= o.LonMax && b.LonMax >= o.LonMin
}

// DefaultBounds is the Indian Ocean coverage rectangle from spec §3.
var DefaultBounds = Bounds{LatMin: -38.4, LatMax: 30.58, LonMin: 22.15, LonMax: 142.48}

// DefaultResolution is the grid resolution R in degrees (spec §3).
const DefaultResolution = 0.2

// RoundToResolution snaps a coordinate to the nearest grid-aligned
// value at resolution r.
func RoundToResolution(v, r float64) float64 {
	if r <= 0 {
		return v
	}
	return math.Round(v/r) * r
}
