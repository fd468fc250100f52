package fleet

import "github.com/kilianp07/transitplan/core/model"

// CostOf prices mix on route for one round trip per vehicle.
func CostOf(route model.Route, mix model.Mix, p model.Parameters) model.CostBreakdown {
	dist := route.RoundTripLength()
	var c model.CostBreakdown
	for _, class := range model.Classes {
		n := float64(mix.Count(class))
		s := p.Spec(class)
		c.Fuel += n * s.FuelCost * dist
		c.Maintenance += n * s.MaintenanceCost * dist
		c.Depreciation += n * s.DepreciationCost * dist
	}
	c.Driver = float64(mix.Total()) * p.DriverCostPerKm * dist
	c.Total = c.Fuel + c.Maintenance + c.Depreciation + c.Driver
	return c
}

// CO2Of returns the emissions of mix over one round trip per vehicle.
func CO2Of(route model.Route, mix model.Mix, p model.Parameters) float64 {
	dist := route.RoundTripLength()
	var total float64
	for _, class := range model.Classes {
		total += float64(mix.Count(class)) * p.Spec(class).CarbonEmission * dist
	}
	return total
}

// UnitCost is the round-trip cost of a single vehicle of class c, driver included.
func UnitCost(route model.Route, c model.VehicleClass, p model.Parameters) float64 {
	return (p.Spec(c).OperatingCostPerKm() + p.DriverCostPerKm) * route.RoundTripLength()
}

// Utilization is demand over capacity, zero when the mix carries nobody.
func Utilization(demand, capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	return float64(demand) / float64(capacity)
}
