package fuelmetrics

import (
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

const nmPerKm = 1 / 1.852

// Consumption is one segment's or route's fuel result (spec §4.J).
type Consumption struct {
	DistanceNm    float64
	DurationHours float64
	MainTons      float64
	AuxTons       float64
	TotalTons     float64
	CostUSD       float64
	SpeedFactor   float64
	WeatherFactor float64
	LoadFactor    float64
}

// WeatherIndex composes a single 0-100 severity score from the three
// alert dimensions, feeding weatherFactor's piecewise lookup. This
// composite is not specified verbatim upstream; it is the module's own
// normalization.
func WeatherIndex(windKn, waveM, visibilityKm float64) float64 {
	idx := windKn*1.2 + waveM*10
	if visibilityKm < 10 {
		idx += (10 - visibilityKm) * 2
	}
	if idx > 100 {
		idx = 100
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func weatherFactor(weatherIndex float64, bp [3]float64) float64 {
	switch {
	case weatherIndex >= bp[2]:
		return 1.30
	case weatherIndex >= bp[1]:
		return 1.15
	case weatherIndex >= bp[0]:
		return 1.05
	default:
		return 1.00
	}
}

// Compute implements the cubic speed-factor fuel formula exactly as
// spec §4.J.
func Compute(distanceKm float64, m mode.Mode, weatherIndex float64, profile Profile, breakpoints [3]float64) Consumption {
	w := m.Weights()
	speedKn := w.SpeedKn

	distanceNm := distanceKm * nmPerKm
	durationH := distanceNm / speedKn
	days := durationH / 24.0

	speedFactor := cube(speedKn / profile.ServiceSpeedKn)
	wf := weatherFactor(weatherIndex, breakpoints)
	loadFactor := w.LoadFactor

	mainT := profile.MainEngineTPD * speedFactor * wf * loadFactor * days
	auxT := profile.AuxiliaryTPD * days
	totalT := mainT + auxT
	cost := totalT * profile.FuelPriceUSDPerT

	return Consumption{
		DistanceNm:    distanceNm,
		DurationHours: durationH,
		MainTons:      mainT,
		AuxTons:       auxT,
		TotalTons:     totalT,
		CostUSD:       cost,
		SpeedFactor:   speedFactor,
		WeatherFactor: wf,
		LoadFactor:    loadFactor,
	}
}

func cube(v float64) float64 { return v * v * v }
