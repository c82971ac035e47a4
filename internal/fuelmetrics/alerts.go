package fuelmetrics

import (
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
)

// thresholds per spec §4.J: wind 15/25/35 kn, wave 2.5/4/6 m,
// visibility 5/2 km (moderate/high/critical; visibility inverted).
const (
	windModerate, windHigh, windCritical    = 15.0, 25.0, 35.0
	waveModerate, waveHigh, waveCritical    = 2.5, 4.0, 6.0
	visModerate, visHigh                     = 5.0, 2.0
)

// EvaluateWaypoint classifies one waypoint's weather against the
// threshold table and returns the aggregated alert, or nil if no
// threshold is crossed.
func EvaluateWaypoint(idx int, lat, lon float64, w *grid.Weather) *routing.Alert {
	if w == nil {
		return nil
	}
	level, reason := classify(w)
	if level == "" {
		return nil
	}
	return &routing.Alert{Index: idx, Level: level, Reason: reason, Lat: lat, Lon: lon}
}

func classify(w *grid.Weather) (routing.AlertLevel, string) {
	switch {
	case w.WindSpeed >= windCritical:
		return routing.AlertCritical, "wind speed exceeds 35 kn"
	case w.WaveHeight >= waveCritical:
		return routing.AlertCritical, "wave height exceeds 6 m"
	case w.WindSpeed >= windHigh:
		return routing.AlertHigh, "wind speed exceeds 25 kn"
	case w.WaveHeight >= waveHigh:
		return routing.AlertHigh, "wave height exceeds 4 m"
	case w.Visibility <= visHigh:
		return routing.AlertHigh, "visibility below 2 km"
	case w.WindSpeed >= windModerate:
		return routing.AlertModerate, "wind speed exceeds 15 kn"
	case w.WaveHeight >= waveModerate:
		return routing.AlertModerate, "wave height exceeds 2.5 m"
	case w.Visibility <= visModerate && w.Visibility > 0:
		return routing.AlertModerate, "visibility below 5 km"
	default:
		return "", ""
	}
}

// HasCritical and HasHigh report whether any alert in alerts is at
// exactly that level.
func HasCritical(alerts []routing.Alert) bool { return hasLevel(alerts, routing.AlertCritical) }
func HasHigh(alerts []routing.Alert) bool     { return hasLevel(alerts, routing.AlertHigh) }

func hasLevel(alerts []routing.Alert, level routing.AlertLevel) bool {
	for _, a := range alerts {
		if a.Level == level {
			return true
		}
	}
	return false
}
