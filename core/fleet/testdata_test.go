package fleet

import "github.com/kilianp07/transitplan/core/model"

// exampleParams prices every class with a single per-km figure held in FuelCost.
func exampleParams() model.Parameters {
	return model.Parameters{
		Minibus:         model.ClassSpec{Capacity: 60, FuelCost: 16, CarbonEmission: 0.5, FleetCount: 10},
		Solo:            model.ClassSpec{Capacity: 100, FuelCost: 20, CarbonEmission: 0.8, FleetCount: 10},
		Articulated:     model.ClassSpec{Capacity: 150, FuelCost: 28, CarbonEmission: 1.1, FleetCount: 10},
		DriverCostPerKm: 38,
	}
}

func exampleRoute() model.Route {
	return model.Route{
		RouteNo: "1", RouteName: "Centre - Harbour",
		LengthAtoB: 10, LengthBtoA: 9,
		TravelTimeAtoB: 30, TravelTimeBtoA: 28,
		PeakAtoB: 200, PeakBtoA: 180,
	}
}
