package fleet

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/model"
	"gonum.org/v1/gonum/floats"
)

// carEmissionPerPassengerKm is the private-car baseline used for carbon savings.
const carEmissionPerPassengerKm = 0.2

// Shortfall reports a class whose planned count exceeds the owned fleet.
type Shortfall struct {
	Class     model.VehicleClass `json:"class"`
	Required  int                `json:"required"`
	Available int                `json:"available"`
}

// Plan is the fleet composition over every route.
type Plan struct {
	Results      []model.OptimizationResult   `json:"results"`
	Compositions map[string]model.Composition `json:"-"`
	Totals       model.Mix                    `json:"totals"`
	Feasible     bool                         `json:"feasible"`
	Shortfalls   []Shortfall                  `json:"shortfalls,omitempty"`
	KPIs         model.KPIData                `json:"kpis"`
}

// Plan optimizes every route and checks the totals against the fleet ceilings.
// Exceeding a ceiling marks the plan infeasible but is not an error.
func (o *Optimizer) Plan(routes []model.Route) (Plan, error) {
	if err := model.ValidateRoutes(routes); err != nil {
		return Plan{}, err
	}
	plan := Plan{
		Results:      make([]model.OptimizationResult, 0, len(routes)),
		Compositions: make(map[string]model.Composition, len(routes)),
		Feasible:     true,
	}
	for _, r := range routes {
		comp, err := o.Optimize(r)
		if err != nil {
			return Plan{}, err
		}
		res := resultOf(r, comp)
		if res.LowerBound, err = RelaxedLowerBound(r, o.Params); err != nil {
			o.Logger.Warnf("%v", err)
		}
		plan.Compositions[r.RouteNo] = comp
		plan.Totals = plan.Totals.Add(comp.Mix)
		plan.Results = append(plan.Results, res)
		o.Logger.Debugw("route optimized", map[string]any{
			"route":       r.RouteNo,
			"minibus":     comp.Mix.Count(model.Minibus),
			"solo":        comp.Mix.Count(model.Solo),
			"articulated": comp.Mix.Count(model.Articulated),
			"cost":        comp.Cost.Total,
			"lower_bound": res.LowerBound,
			"gap":         res.Gap(),
		})
	}
	for _, c := range model.Classes {
		owned := o.Params.Spec(c).FleetCount
		if used := plan.Totals.Count(c); used > owned {
			plan.Feasible = false
			plan.Shortfalls = append(plan.Shortfalls, Shortfall{Class: c, Required: used, Available: owned})
		}
	}
	if !plan.Feasible {
		o.Logger.Warnf("fleet plan exceeds owned vehicles: %s", describeShortfalls(plan.Shortfalls))
	}
	plan.KPIs = KPIs(plan.Results, routes)
	return plan, nil
}

func describeShortfalls(s []Shortfall) string {
	out := ""
	for i, sf := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %d/%d", sf.Class, sf.Required, sf.Available)
	}
	return out
}

func resultOf(r model.Route, comp model.Composition) model.OptimizationResult {
	util := 0.0
	if comp.Capacity > 0 {
		util = (Utilization(r.PeakAtoB, comp.Capacity) + Utilization(r.PeakBtoA, comp.Capacity)) / 2
	}
	return model.OptimizationResult{
		RouteNo:             r.RouteNo,
		RouteName:           r.RouteName,
		LengthAtoB:          r.LengthAtoB,
		LengthBtoA:          r.LengthBtoA,
		Minibus:             comp.Mix.Count(model.Minibus),
		Solo:                comp.Mix.Count(model.Solo),
		Articulated:         comp.Mix.Count(model.Articulated),
		FuelCost:            comp.Cost.Fuel,
		MaintenanceCost:     comp.Cost.Maintenance,
		DepreciationCost:    comp.Cost.Depreciation,
		DriverCost:          comp.Cost.Driver,
		TotalCost:           comp.Cost.Total,
		CarbonEmission:      comp.CO2,
		CapacityUtilization: util,
		PeakAtoB:            r.PeakAtoB,
		PeakBtoA:            r.PeakBtoA,
	}
}

// KPIs aggregates per-route results. Ratios are zero when their denominator is.
func KPIs(results []model.OptimizationResult, routes []model.Route) model.KPIData {
	byNo := make(map[string]model.Route, len(routes))
	passengers := 0
	for _, r := range routes {
		byNo[r.RouteNo] = r
		passengers += r.PeakAtoB + r.PeakBtoA
	}

	n := len(results)
	dist := make([]float64, 0, n)
	fuel := make([]float64, n)
	maint := make([]float64, n)
	depr := make([]float64, n)
	driver := make([]float64, n)
	co2 := make([]float64, n)
	for i, res := range results {
		if r, ok := byNo[res.RouteNo]; ok {
			dist = append(dist, r.RoundTripLength()*float64(res.Mix().Total()))
		}
		fuel[i] = res.FuelCost
		maint[i] = res.MaintenanceCost
		depr[i] = res.DepreciationCost
		driver[i] = res.DriverCost
		co2[i] = res.CarbonEmission
	}

	k := model.KPIData{
		TotalPassengers:   passengers,
		TotalDistance:     floats.Sum(dist),
		TotalFuelCost:     floats.Sum(fuel),
		TotalMaintenance:  floats.Sum(maint),
		TotalDepreciation: floats.Sum(depr),
		TotalDriverCost:   floats.Sum(driver),
		TotalCarbon:       floats.Sum(co2),
	}
	k.TotalCost = k.TotalFuelCost + k.TotalMaintenance + k.TotalDepreciation + k.TotalDriverCost
	if k.TotalDistance > 0 {
		k.CostPerKm = k.TotalCost / k.TotalDistance
	}
	if passengers > 0 {
		k.CostPerPassenger = k.TotalCost / float64(passengers)
		k.CarbonPerPassenger = k.TotalCarbon / float64(passengers)
	}
	k.CarbonSaved = float64(passengers) * k.TotalDistance * (carEmissionPerPassengerKm - k.CarbonPerPassenger)
	return k
}
