package fuelmetrics

import "github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"

// Style is the map-rendering hint returned alongside a route (spec §6).
type Style struct {
	Color       string
	StrokeWidth float64
	DashArray   string
	Opacity     float64
}

var styles = map[mode.Mode]Style{
	mode.Fuel:    {Color: "#2e8b57", StrokeWidth: 3, DashArray: "", Opacity: 0.9},
	mode.Optimal: {Color: "#1e6fd9", StrokeWidth: 3, DashArray: "", Opacity: 0.9},
	mode.Safe:    {Color: "#c0392b", StrokeWidth: 4, DashArray: "6,4", Opacity: 0.95},
	mode.ULCV:    {Color: "#6a3d9a", StrokeWidth: 4, DashArray: "2,3", Opacity: 0.95},
}

func StyleFor(m mode.Mode) Style {
	if s, ok := styles[m]; ok {
		return s
	}
	return styles[mode.Optimal]
}
