package coarseplanner

import (
	"testing"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

func mumbai() routing.Waypoint {
	return routing.Waypoint{Lat: 18.97, Lon: 72.87, Name: "Mumbai", Type: routing.WaypointDeparture}
}

func vizag() routing.Waypoint {
	return routing.Waypoint{Lat: 17.68, Lon: 83.30, Name: "Visakhapatnam", Type: routing.WaypointArrival}
}

func TestClassifyRegion_KnownBoxes(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     Region
	}{
		{"singapore", 1.3, 103.8, RegionSingapore},
		{"persian gulf", 26, 51, RegionPersianGulf},
		{"open ocean", -40, -40, RegionOpenOcean},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyRegion(c.lat, c.lon); got != c.want {
				t.Fatalf("ClassifyRegion(%g,%g) = %s, want %s", c.lat, c.lon, got, c.want)
			}
		})
	}
}

func TestPlan_NamedPairWaypointCountsPerMode(t *testing.T) {
	cases := []struct {
		m    mode.Mode
		want int
	}{
		{mode.Fuel, 8},
		{mode.Optimal, 10},
		{mode.Safe, 14},
	}
	for _, c := range cases {
		t.Run(string(c.m), func(t *testing.T) {
			wps := Plan(mumbai(), vizag(), c.m, nil)
			if len(wps) != c.want {
				t.Fatalf("mode %s: got %d waypoints, want %d", c.m, len(wps), c.want)
			}
			if wps[0].Name != "Mumbai" || wps[len(wps)-1].Name != "Visakhapatnam" {
				t.Fatalf("endpoints not preserved: %+v .. %+v", wps[0], wps[len(wps)-1])
			}
		})
	}
}

func TestPlan_NamedPairReversedWhenTraversedBackwards(t *testing.T) {
	wps := Plan(vizag(), mumbai(), mode.Fuel, nil)
	if wps[0].Name != "Visakhapatnam" || wps[len(wps)-1].Name != "Mumbai" {
		t.Fatalf("expected reversed named-pair route, got endpoints %+v .. %+v", wps[0], wps[len(wps)-1])
	}
}

func TestPlan_ShortDirectRouteIsJustEndpoints(t *testing.T) {
	start := routing.Waypoint{Lat: 0, Lon: 0}
	end := routing.Waypoint{Lat: 1, Lon: 1}
	wps := Plan(start, end, mode.Optimal, nil)
	if len(wps) != 2 {
		t.Fatalf("a short crossing with no named/regional match should be direct, got %d points", len(wps))
	}
}

func TestPlan_LongCrossingSynthesizesIntermediateWaypoints(t *testing.T) {
	start := routing.Waypoint{Lat: -30, Lon: -30}
	end := routing.Waypoint{Lat: -30, Lon: 30}
	wps := Plan(start, end, mode.Optimal, nil)
	if len(wps) < 3 {
		t.Fatalf("a long open-ocean crossing should synthesize waypoints, got %d", len(wps))
	}
}

func TestPlan_HubCrossingRoutesViaHub(t *testing.T) {
	// West India to East India crosses the subcontinent via a hub.
	start := routing.Waypoint{Lat: 20, Lon: 70} // west india
	end := routing.Waypoint{Lat: 18, Lon: 85}   // east india
	wps := Plan(start, end, mode.Optimal, nil)
	if len(wps) != 3 {
		t.Fatalf("hub crossing should produce [start, hub, end], got %d points: %+v", len(wps), wps)
	}
	if wps[1].Type != routing.WaypointPort {
		t.Fatalf("middle waypoint should be the hub port, got %+v", wps[1])
	}
}

func TestPlan_FuelAndSafeShareEndpoints(t *testing.T) {
	fuelWps := Plan(mumbai(), vizag(), mode.Fuel, nil)
	safeWps := Plan(mumbai(), vizag(), mode.Safe, nil)

	if len(fuelWps) < 3 || len(safeWps) < 3 {
		t.Fatalf("expected interior waypoints for both modes")
	}
	// Different tables entirely (8 vs 14 points) but both should still
	// start/end at the same named ports.
	if fuelWps[0].Lat != safeWps[0].Lat || fuelWps[0].Lon != safeWps[0].Lon {
		t.Fatalf("start waypoint should be identical across modes")
	}
	fuelEnd, safeEnd := fuelWps[len(fuelWps)-1], safeWps[len(safeWps)-1]
	if fuelEnd.Lat != safeEnd.Lat || fuelEnd.Lon != safeEnd.Lon {
		t.Fatalf("end waypoint should be identical across modes")
	}
}
