// Package routing defines the domain types shared by the coarse and
// fine planners, the orchestrator, and the fuel/metric engine (spec §3).
package routing

import (
	"time"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

type WaypointType string

const (
	WaypointPort      WaypointType = "port"
	WaypointOpenWater WaypointType = "open_water"
	WaypointCorridor  WaypointType = "corridor"
	WaypointApproach  WaypointType = "approach"
	WaypointArrival   WaypointType = "arrival"
	WaypointDeparture WaypointType = "departure"
)

// Waypoint is not a Cell: it may lie between grid vertices and is
// snapped to the nearest water cell on entry to the fine planner
// (spec §3).
type Waypoint struct {
	Lat, Lon float64
	Name     string
	Type     WaypointType
}

// PathPoint is one entry of a planned route.
type PathPoint struct {
	Lat, Lon float64
	Weather  *grid.Weather
}

// AlertLevel is one of the three aggregated alert severities (spec §4.J).
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertHigh     AlertLevel = "high"
	AlertModerate AlertLevel = "moderate"
)

type Alert struct {
	Index   int
	Level   AlertLevel
	Reason  string
	Lat     float64
	Lon     float64
}

// Summary is the aggregate route metrics (spec §3).
type Summary struct {
	DistanceKm          float64
	DurationHours        float64
	FuelTonsTotal        float64
	FuelTonsMain         float64
	FuelTonsAux          float64
	FuelCostUSD          float64
	SafetyPct            float64
	FuelEfficiencyPct     float64
	AvgWind, MaxWind     float64
	AvgWave, MaxWave     float64
	AvgTemperature       float64
	AvgVisibility        float64
	DataCoverage          float64
	Mode                 string
	PointsCount          int
	SpeedFactor          float64
	WeatherFactorValue   float64
}

// Route is the full planning result.
type Route struct {
	Success bool
	Path    []PathPoint
	Summary Summary
	Alerts  []Alert
	// Warnings carries demoted, non-terminal failures (spec §7).
	Warnings []string

	CalculatedAt time.Time
}
