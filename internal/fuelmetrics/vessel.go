// Package fuelmetrics implements the Fuel & Metric Engine (spec §4.J):
// per-route fuel consumption, cost, and weather-alert aggregation.
package fuelmetrics

// Profile is a vessel class's fuel-consumption parameters.
type Profile struct {
	Name             string
	ServiceSpeedKn   float64
	MainEngineTPD    float64 // t/day at service speed
	AuxiliaryTPD     float64 // t/day, speed-independent
	FuelPriceUSDPerT float64
}

// PanamaxDefault is the spec's default profile (spec §4.J).
var PanamaxDefault = Profile{
	Name: "panamax_50000dwt", ServiceSpeedKn: 20, MainEngineTPD: 35,
	AuxiliaryTPD: 3, FuelPriceUSDPerT: 600,
}

// Handysize is a smaller, cheaper-to-run supplement profile.
var Handysize = Profile{
	Name: "handysize_30000dwt", ServiceSpeedKn: 16, MainEngineTPD: 22,
	AuxiliaryTPD: 2, FuelPriceUSDPerT: 600,
}

// ULCVProfile is the large-vessel supplement profile; the ulcv routing
// mode is typically paired with this.
var ULCVProfile = Profile{
	Name: "ulcv_200000dwt", ServiceSpeedKn: 22, MainEngineTPD: 180,
	AuxiliaryTPD: 12, FuelPriceUSDPerT: 600,
}

// Registry resolves a vessel profile by name, falling back to
// PanamaxDefault for an unrecognized one.
var Registry = map[string]Profile{
	"panamax":   PanamaxDefault,
	"handysize": Handysize,
	"ulcv":      ULCVProfile,
}

func ResolveProfile(name string) Profile {
	if p, ok := Registry[name]; ok {
		return p
	}
	return PanamaxDefault
}
