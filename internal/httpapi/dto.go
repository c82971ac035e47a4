package httpapi

import (
	"time"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/fuelmetrics"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

type pointRequest struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

type routeRequest struct {
	Start pointRequest `json:"start"`
	End   pointRequest `json:"end"`
	Mode  string       `json:"mode"`
}

type pathPointDTO struct {
	Lat     float64      `json:"lat"`
	Lon     float64      `json:"lon"`
	Weather *weatherDTO  `json:"weather,omitempty"`
}

type weatherDTO struct {
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	WaveHeight    float64 `json:"wave_height"`
	Visibility    float64 `json:"visibility"`
	Temperature   float64 `json:"temperature"`
}

type fuelConsumptionDTO struct {
	TotalTons      float64        `json:"total_tons"`
	MainEngineTons float64        `json:"main_engine_tons"`
	AuxiliaryTons  float64        `json:"auxiliary_tons"`
	TotalCostUSD   float64        `json:"total_cost_usd"`
	Breakdown      breakdownDTO   `json:"breakdown"`
}

type breakdownDTO struct {
	SpeedFactor   float64 `json:"speed_factor"`
	WeatherFactor float64 `json:"weather_factor"`
	LoadFactor    float64 `json:"load_factor"`
}

type durationDTO struct {
	Hours         float64 `json:"hours"`
	Days          float64 `json:"days"`
	AvgSpeedKnots float64 `json:"avg_speed_knots"`
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
}

type weatherStatsDTO struct {
	AvgWindSpeed  float64 `json:"avg_wind_speed"`
	MaxWindSpeed  float64 `json:"max_wind_speed"`
	AvgWaveHeight float64 `json:"avg_wave_height"`
	MaxWaveHeight float64 `json:"max_wave_height"`
	AvgTemperature float64 `json:"avg_temperature"`
	AvgVisibility float64 `json:"avg_visibility"`
	DataCoverage  float64 `json:"data_coverage"`
}

type alertsDTO struct {
	Critical    []alertDTO `json:"critical"`
	High        []alertDTO `json:"high"`
	Moderate    []alertDTO `json:"moderate"`
	TotalCount  int        `json:"total_count"`
	HasCritical bool       `json:"hasCritical"`
	HasHigh     bool       `json:"hasHigh"`
}

type alertDTO struct {
	Index  int     `json:"index"`
	Reason string  `json:"reason"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

type styleDTO struct {
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"stroke_width"`
	DashArray   string  `json:"dash_array"`
	Opacity     float64 `json:"opacity"`
}

type thresholdsDTO struct {
	WindModerateKn, WindHighKn, WindCriticalKn float64
	WaveModerateM, WaveHighM, WaveCriticalM     float64
	VisibilityModerateKm, VisibilityHighKm      float64
}

type routeResponse struct {
	Success             bool               `json:"success"`
	Mode                string             `json:"mode"`
	Path                []pathPointDTO     `json:"path"`
	TotalDistanceKm     float64            `json:"total_distance_km"`
	TotalTimeHours      float64            `json:"total_time_hours"`
	FuelConsumption     fuelConsumptionDTO `json:"fuel_consumption"`
	Duration            durationDTO        `json:"duration"`
	SafetyPercentage    float64            `json:"safety_percentage"`
	FuelEfficiencyPct   float64            `json:"fuel_efficiency_percentage"`
	WeatherStats        weatherStatsDTO    `json:"weather_stats"`
	Alerts              alertsDTO          `json:"alerts"`
	Style               styleDTO           `json:"style"`
	Thresholds          thresholdsDTO      `json:"thresholds"`
	CalculatedAt        time.Time          `json:"calculated_at"`
	Warnings            []string           `json:"warnings,omitempty"`
}

func toResponse(r routing.Route, m mode.Mode) routeResponse {
	path := make([]pathPointDTO, len(r.Path))
	for i, p := range r.Path {
		dto := pathPointDTO{Lat: p.Lat, Lon: p.Lon}
		if p.Weather != nil {
			dto.Weather = &weatherDTO{
				WindSpeed:     p.Weather.WindSpeed,
				WindDirection: p.Weather.WindDirection,
				WaveHeight:    p.Weather.WaveHeight,
				Visibility:    p.Weather.Visibility,
				Temperature:   p.Weather.Temperature,
			}
		}
		path[i] = dto
	}

	var critical, high, moderate []alertDTO
	for _, a := range r.Alerts {
		dto := alertDTO{Index: a.Index, Reason: a.Reason, Lat: a.Lat, Lon: a.Lon}
		switch a.Level {
		case routing.AlertCritical:
			critical = append(critical, dto)
		case routing.AlertHigh:
			high = append(high, dto)
		default:
			moderate = append(moderate, dto)
		}
	}

	style := fuelmetrics.StyleFor(m)
	w := m.Weights()

	return routeResponse{
		Success:         r.Success,
		Mode:            string(m),
		Path:            path,
		TotalDistanceKm: r.Summary.DistanceKm,
		TotalTimeHours:  r.Summary.DurationHours,
		FuelConsumption: fuelConsumptionDTO{
			TotalTons:      r.Summary.FuelTonsTotal,
			MainEngineTons: r.Summary.FuelTonsMain,
			AuxiliaryTons:  r.Summary.FuelTonsAux,
			TotalCostUSD:   r.Summary.FuelCostUSD,
			Breakdown: breakdownDTO{
				SpeedFactor:   r.Summary.SpeedFactor,
				WeatherFactor: r.Summary.WeatherFactorValue,
				LoadFactor:    w.LoadFactor,
			},
		},
		Duration: durationDTO{
			Hours:         r.Summary.DurationHours,
			Days:          r.Summary.DurationHours / 24.0,
			AvgSpeedKnots: w.SpeedKn,
			AvgSpeedKmh:   w.SpeedKn * 1.852,
		},
		SafetyPercentage:  r.Summary.SafetyPct,
		FuelEfficiencyPct: r.Summary.FuelEfficiencyPct,
		WeatherStats: weatherStatsDTO{
			AvgWindSpeed:   r.Summary.AvgWind,
			MaxWindSpeed:   r.Summary.MaxWind,
			AvgWaveHeight:  r.Summary.AvgWave,
			MaxWaveHeight:  r.Summary.MaxWave,
			AvgTemperature: r.Summary.AvgTemperature,
			AvgVisibility:  r.Summary.AvgVisibility,
			DataCoverage:   r.Summary.DataCoverage,
		},
		Alerts: alertsDTO{
			Critical: critical, High: high, Moderate: moderate,
			TotalCount:  len(r.Alerts),
			HasCritical: len(critical) > 0,
			HasHigh:     len(high) > 0,
		},
		Style: styleDTO{
			Color: style.Color, StrokeWidth: style.StrokeWidth,
			DashArray: style.DashArray, Opacity: style.Opacity,
		},
		Thresholds: thresholdsDTO{
			WindModerateKn: 15, WindHighKn: 25, WindCriticalKn: 35,
			WaveModerateM: 2.5, WaveHighM: 4, WaveCriticalM: 6,
			VisibilityModerateKm: 5, VisibilityHighKm: 2,
		},
		CalculatedAt: r.CalculatedAt,
		Warnings:     r.Warnings,
	}
}

