package coarseplanner

import "github.com/rushiparkhe18/JalMarg-2.0/internal/routing"

// Region is one of the ~15 named regions the classifier maps a point
// to (spec §4.G).
type Region string

const (
	RegionWestIndia    Region = "WEST_INDIA"
	RegionEastIndia    Region = "EAST_INDIA"
	RegionSouthIndia   Region = "SOUTH_INDIA"
	RegionBangladesh   Region = "BANGLADESH"
	RegionSriLanka     Region = "SRI_LANKA"
	RegionMiddleEast   Region = "MIDDLE_EAST"
	RegionEastAfrica   Region = "EAST_AFRICA"
	RegionSingapore    Region = "SINGAPORE"
	RegionMalacca      Region = "MALACCA_STRAIT"
	RegionBayOfBengal  Region = "BAY_OF_BENGAL"
	RegionArabianSea   Region = "ARABIAN_SEA"
	RegionPersianGulf  Region = "PERSIAN_GULF"
	RegionRedSea       Region = "RED_SEA"
	RegionSoutheastAsia Region = "SOUTHEAST_ASIA"
	RegionOpenOcean    Region = "OPEN_OCEAN"
)

type regionBox struct {
	region                 Region
	latMin, latMax         float64
	lonMin, lonMax         float64
}

// regionTable is the fixed decision table the classifier scans in
// order; first match wins (spec §4.G: "region classifier maps (lat,
// lon) to one of ~15 named regions").
var regionTable = []regionBox{
	{RegionPersianGulf, 23, 30.5, 47, 57},
	{RegionRedSea, 12, 30, 32, 44},
	{RegionMiddleEast, 10, 26, 43, 63},
	{RegionWestIndia, 15, 24, 68, 74},
	{RegionSouthIndia, 6, 15, 72, 80.5},
	{RegionSriLanka, 5.5, 10, 79, 82},
	{RegionEastIndia, 15, 22, 82, 92.5},
	{RegionBangladesh, 20.5, 26.5, 88, 92.5},
	{RegionBayOfBengal, 5, 22, 80, 100},
	{RegionSingapore, 0.5, 2, 103, 104.5},
	{RegionMalacca, 0, 7, 95, 104.5},
	{RegionSoutheastAsia, -5, 10, 95, 120},
	{RegionEastAfrica, -20, 12, 38, 52},
	{RegionArabianSea, 8, 25, 60, 72},
}

// ClassifyRegion maps (lat, lon) to the first matching named region,
// falling back to RegionOpenOcean.
func ClassifyRegion(lat, lon float64) Region {
	for _, b := range regionTable {
		if lat >= b.latMin && lat <= b.latMax && lon >= b.lonMin && lon <= b.lonMax {
			return b.region
		}
	}
	return RegionOpenOcean
}

// Hub is a named port treated as a connection point for long,
// cross-regional routes (spec Glossary).
type Hub struct {
	Name     string
	Lat, Lon float64
}

var hubs = []Hub{
	{"Chennai", 13.08, 80.27},
	{"Kochi", 9.93, 76.26},
	{"Tuticorin", 8.80, 78.15},
}

// namedPorts resolves a Waypoint's human name for decision-table
// lookups when it falls within portMatchRadiusDeg of a known port.
var namedPorts = map[string]routing.Waypoint{
	"MUMBAI":          {Lat: 18.97, Lon: 72.87, Name: "Mumbai", Type: routing.WaypointPort},
	"VISAKHAPATNAM":   {Lat: 17.68, Lon: 83.30, Name: "Visakhapatnam", Type: routing.WaypointPort},
	"CHENNAI":         {Lat: 13.08, Lon: 80.27, Name: "Chennai", Type: routing.WaypointPort},
	"KOCHI":           {Lat: 9.93, Lon: 76.26, Name: "Kochi", Type: routing.WaypointPort},
	"TUTICORIN":       {Lat: 8.80, Lon: 78.15, Name: "Tuticorin", Type: routing.WaypointPort},
	"COLOMBO":         {Lat: 6.93, Lon: 79.84, Name: "Colombo", Type: routing.WaypointPort},
	"SINGAPORE":       {Lat: 1.28, Lon: 103.85, Name: "Singapore", Type: routing.WaypointPort},
}

const portMatchRadiusDeg = 0.5

// resolveName returns the canonical name of the port nearest wp if
// within portMatchRadiusDeg, else "".
func resolveName(wp routing.Waypoint) string {
	best := ""
	bestDist := portMatchRadiusDeg * portMatchRadiusDeg
	for name, p := range namedPorts {
		dLat := wp.Lat - p.Lat
		dLon := wp.Lon - p.Lon
		d2 := dLat*dLat + dLon*dLon
		if d2 <= bestDist {
			bestDist = d2
			best = name
		}
	}
	return best
}

// namedPairSet is the mode-specific strategic waypoint table for a
// known origin/destination pair (spec §4.G).
type namedPairSet struct {
	fuel, optimal, safe []routing.Waypoint
}

// namedPairs holds the canonical Mumbai<->Visakhapatnam corridor from
// spec §8 scenarios 1-3: fuel=8, optimal=10, safe=14 waypoints
// (including the endpoints), safe bowing further from the coast.
var namedPairs = map[[2]string]namedPairSet{
	{"MUMBAI", "VISAKHAPATNAM"}: {
		fuel: []routing.Waypoint{
			{Lat: 18.97, Lon: 72.87, Name: "Mumbai", Type: routing.WaypointDeparture},
			{Lat: 17.90, Lon: 74.50, Type: routing.WaypointCorridor},
			{Lat: 16.50, Lon: 76.80, Type: routing.WaypointCorridor},
			{Lat: 15.20, Lon: 78.60, Type: routing.WaypointOpenWater},
			{Lat: 14.50, Lon: 80.20, Type: routing.WaypointOpenWater},
			{Lat: 15.30, Lon: 81.60, Type: routing.WaypointCorridor},
			{Lat: 16.60, Lon: 82.60, Type: routing.WaypointCorridor},
			{Lat: 17.68, Lon: 83.30, Name: "Visakhapatnam", Type: routing.WaypointArrival},
		},
		optimal: []routing.Waypoint{
			{Lat: 18.97, Lon: 72.87, Name: "Mumbai", Type: routing.WaypointDeparture},
			{Lat: 17.95, Lon: 74.30, Type: routing.WaypointCorridor},
			{Lat: 16.80, Lon: 76.20, Type: routing.WaypointCorridor},
			{Lat: 15.80, Lon: 77.90, Type: routing.WaypointOpenWater},
			{Lat: 14.90, Lon: 79.30, Type: routing.WaypointOpenWater},
			{Lat: 14.30, Lon: 80.70, Type: routing.WaypointOpenWater},
			{Lat: 15.00, Lon: 81.80, Type: routing.WaypointCorridor},
			{Lat: 16.00, Lon: 82.40, Type: routing.WaypointCorridor},
			{Lat: 16.90, Lon: 82.90, Type: routing.WaypointCorridor},
			{Lat: 17.68, Lon: 83.30, Name: "Visakhapatnam", Type: routing.WaypointArrival},
		},
		safe: []routing.Waypoint{
			{Lat: 18.97, Lon: 72.87, Name: "Mumbai", Type: routing.WaypointDeparture},
			{Lat: 18.20, Lon: 73.80, Type: routing.WaypointApproach},
			{Lat: 17.60, Lon: 75.40, Type: routing.WaypointCorridor},
			{Lat: 16.90, Lon: 76.90, Type: routing.WaypointCorridor},
			{Lat: 16.10, Lon: 78.20, Type: routing.WaypointOpenWater},
			{Lat: 15.30, Lon: 79.30, Type: routing.WaypointOpenWater},
			{Lat: 14.60, Lon: 80.30, Type: routing.WaypointOpenWater},
			{Lat: 14.20, Lon: 81.30, Type: routing.WaypointOpenWater},
			{Lat: 14.40, Lon: 82.10, Type: routing.WaypointCorridor},
			{Lat: 15.10, Lon: 82.70, Type: routing.WaypointCorridor},
			{Lat: 15.90, Lon: 83.10, Type: routing.WaypointCorridor},
			{Lat: 16.70, Lon: 83.40, Type: routing.WaypointCorridor},
			{Lat: 17.30, Lon: 83.40, Type: routing.WaypointApproach},
			{Lat: 17.68, Lon: 83.30, Name: "Visakhapatnam", Type: routing.WaypointArrival},
		},
	},
}

// regionalPairs covers direct India<->Middle East / India<->East Africa
// style pairs that don't have a dedicated named-port table: a sparser,
// region-midpoint-based route (spec §4.G "direct regional set").
var regionalPairs = map[[2]Region]bool{
	{RegionWestIndia, RegionMiddleEast}:  true,
	{RegionMiddleEast, RegionWestIndia}:  true,
	{RegionWestIndia, RegionEastAfrica}:  true,
	{RegionEastAfrica, RegionWestIndia}:  true,
	{RegionSouthIndia, RegionSriLanka}:   true,
	{RegionSriLanka, RegionSouthIndia}:   true,
	{RegionBayOfBengal, RegionSoutheastAsia}: true,
	{RegionSoutheastAsia, RegionBayOfBengal}: true,
}

// hubCrossingPairs names the region pairs that cross the Indian
// subcontinent and therefore route via a hub (spec §4.G).
var hubCrossingPairs = map[[2]Region]bool{
	{RegionWestIndia, RegionEastIndia}: true,
	{RegionEastIndia, RegionWestIndia}: true,
	{RegionWestIndia, RegionBangladesh}: true,
	{RegionBangladesh, RegionWestIndia}: true,
	{RegionArabianSea, RegionBayOfBengal}: true,
	{RegionBayOfBengal, RegionArabianSea}: true,
}
