package schedule

import (
	"testing"

	"github.com/kilianp07/transitplan/core/fleet"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/stretchr/testify/require"
)

func testParams() model.Parameters {
	return model.Parameters{
		Minibus:         model.ClassSpec{Capacity: 60, FuelCost: 16, FleetCount: 10},
		Solo:            model.ClassSpec{Capacity: 100, FuelCost: 20, FleetCount: 10},
		Articulated:     model.ClassSpec{Capacity: 150, FuelCost: 28, FleetCount: 10},
		DriverCostPerKm: 38,
	}
}

func morningPeak(t *testing.T) model.Window {
	t.Helper()
	w, err := model.ParseWindow("06:00", "09:00")
	require.NoError(t, err)
	return w
}

func exampleRoute() model.Route {
	return model.Route{
		RouteNo: "1", RouteName: "Centre - Harbour",
		LengthAtoB: 10, LengthBtoA: 9,
		TravelTimeAtoB: 30, TravelTimeBtoA: 28,
		PeakAtoB: 200, PeakBtoA: 180,
	}
}

func compositions(t *testing.T, routes []model.Route, p model.Parameters) map[string]model.Composition {
	t.Helper()
	out := make(map[string]model.Composition, len(routes))
	for _, r := range routes {
		c, err := fleet.Optimize(r, p)
		require.NoError(t, err)
		out[r.RouteNo] = c
	}
	return out
}

func solo(route string, n int, p model.Parameters) model.Composition {
	mix := model.NewMix(0, n, 0)
	return model.Composition{RouteNo: route, Mix: mix, Capacity: mix.Capacity(p)}
}

func newScheduler(t *testing.T, p model.Parameters, w model.Window) *Scheduler {
	t.Helper()
	s, err := NewScheduler(p, w, nil)
	require.NoError(t, err)
	return s
}

func cityRoutes() []model.Route {
	return []model.Route{
		exampleRoute(),
		{RouteNo: "2", LengthAtoB: 6, LengthBtoA: 6.5, TravelTimeAtoB: 20, TravelTimeBtoA: 22, PeakAtoB: 320, PeakBtoA: 140},
		{RouteNo: "3", LengthAtoB: 14, LengthBtoA: 14, TravelTimeAtoB: 41, TravelTimeBtoA: 39, PeakAtoB: 90, PeakBtoA: 260},
		{RouteNo: "4", LengthAtoB: 3, LengthBtoA: 3, TravelTimeAtoB: 9, TravelTimeBtoA: 9, PeakAtoB: 0, PeakBtoA: 0},
	}
}
