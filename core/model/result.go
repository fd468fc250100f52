package model

// Mix holds a count per vehicle class, indexed by VehicleClass.
type Mix [numClasses]int

// NewMix builds a mix from minibus, solo and articulated counts.
func NewMix(minibus, solo, articulated int) Mix {
	return Mix{minibus, solo, articulated}
}

// Count returns the number of vehicles of class c.
func (m Mix) Count(c VehicleClass) int { return m[c] }

// Total is the number of vehicles in the mix.
func (m Mix) Total() int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// Capacity is the combined seat capacity of the mix.
func (m Mix) Capacity(p Parameters) int {
	total := 0
	for _, c := range Classes {
		total += m[c] * p.Capacity(c)
	}
	return total
}

// Add returns the element-wise sum.
func (m Mix) Add(o Mix) Mix {
	for i := range m {
		m[i] += o[i]
	}
	return m
}

// CostBreakdown splits a cost into its components.
type CostBreakdown struct {
	Fuel         float64 `json:"fuel" yaml:"fuel"`
	Maintenance  float64 `json:"maintenance" yaml:"maintenance"`
	Depreciation float64 `json:"depreciation" yaml:"depreciation"`
	Driver       float64 `json:"driver" yaml:"driver"`
	Total        float64 `json:"total" yaml:"total"`
}

// Composition is the vehicle mix chosen for one route.
type Composition struct {
	RouteNo  string        `json:"route_no"`
	Mix      Mix           `json:"mix"`
	Capacity int           `json:"capacity"`
	Cost     CostBreakdown `json:"cost"`
	CO2      float64       `json:"co2"`
	// LoadFactor is busier-direction demand over capacity; it breaks cost ties.
	LoadFactor float64 `json:"load_factor"`
}

// OptimizationResult is the per-route report of the fleet optimizer.
type OptimizationResult struct {
	RouteNo             string  `json:"route_no" yaml:"route_no"`
	RouteName           string  `json:"route_name" yaml:"route_name"`
	LengthAtoB          float64 `json:"length_a_to_b" yaml:"length_a_to_b"`
	LengthBtoA          float64 `json:"length_b_to_a" yaml:"length_b_to_a"`
	Minibus             int     `json:"minibus" yaml:"minibus"`
	Solo                int     `json:"solo" yaml:"solo"`
	Articulated         int     `json:"articulated" yaml:"articulated"`
	FuelCost            float64 `json:"fuel_cost" yaml:"fuel_cost"`
	MaintenanceCost     float64 `json:"maintenance_cost" yaml:"maintenance_cost"`
	DepreciationCost    float64 `json:"depreciation_cost" yaml:"depreciation_cost"`
	DriverCost          float64 `json:"driver_cost" yaml:"driver_cost"`
	TotalCost           float64 `json:"total_cost" yaml:"total_cost"`
	CarbonEmission      float64 `json:"carbon_emission" yaml:"carbon_emission"`
	CapacityUtilization float64 `json:"capacity_utilization" yaml:"capacity_utilization"`
	PeakAtoB            int     `json:"peak_a_to_b" yaml:"peak_a_to_b"`
	PeakBtoA            int     `json:"peak_b_to_a" yaml:"peak_b_to_a"`
	// LowerBound is the cost of the continuous relaxation; TotalCost minus it is the optimality gap.
	LowerBound float64 `json:"lower_bound" yaml:"lower_bound"`
}

// Gap is how far the chosen mix costs above the relaxed lower bound.
func (r OptimizationResult) Gap() float64 { return r.TotalCost - r.LowerBound }

// Mix returns the per-class counts of the result.
func (r OptimizationResult) Mix() Mix { return NewMix(r.Minibus, r.Solo, r.Articulated) }

// TripEntry is one scheduled departure.
type TripEntry struct {
	Time      string       `json:"time" yaml:"time"`
	Departure int          `json:"departure" yaml:"departure"`
	VehicleID string       `json:"vehicle_id" yaml:"vehicle_id"`
	Class     VehicleClass `json:"class" yaml:"class"`
	RouteNo   string       `json:"route_no" yaml:"route_no"`
}

// VehicleUsage summarises the work of one vehicle over the window.
type VehicleUsage struct {
	Trips  int          `json:"trips" yaml:"trips"`
	Class  VehicleClass `json:"class" yaml:"class"`
	Routes []string     `json:"routes" yaml:"routes"`
}

// RouteInfo echoes the route attributes next to its timetable.
type RouteInfo struct {
	RouteName      string  `json:"route_name" yaml:"route_name"`
	LengthAtoB     float64 `json:"length_a_to_b" yaml:"length_a_to_b"`
	LengthBtoA     float64 `json:"length_b_to_a" yaml:"length_b_to_a"`
	TravelTimeAtoB int     `json:"travel_time_a_to_b" yaml:"travel_time_a_to_b"`
	TravelTimeBtoA int     `json:"travel_time_b_to_a" yaml:"travel_time_b_to_a"`
	PeakAtoB       int     `json:"peak_a_to_b" yaml:"peak_a_to_b"`
	PeakBtoA       int     `json:"peak_b_to_a" yaml:"peak_b_to_a"`
}

// InfoOf returns the RouteInfo for r.
func InfoOf(r Route) RouteInfo {
	return RouteInfo{
		RouteName:      r.RouteName,
		LengthAtoB:     r.LengthAtoB,
		LengthBtoA:     r.LengthBtoA,
		TravelTimeAtoB: r.TravelTimeAtoB,
		TravelTimeBtoA: r.TravelTimeBtoA,
		PeakAtoB:       r.PeakAtoB,
		PeakBtoA:       r.PeakBtoA,
	}
}

// RouteSchedule is the timetable of a single route.
type RouteSchedule struct {
	ScheduleAB []TripEntry `json:"schedule_ab" yaml:"schedule_ab"`
	ScheduleBA []TripEntry `json:"schedule_ba" yaml:"schedule_ba"`
	Info       RouteInfo   `json:"route_info" yaml:"route_info"`
}

// Trips returns the trip list of the direction.
func (s RouteSchedule) Trips(d Direction) []TripEntry {
	if d == BtoA {
		return s.ScheduleBA
	}
	return s.ScheduleAB
}

// ScheduleResult is the timetable produced for one interlining level.
type ScheduleResult struct {
	FrequencyAB    int                      `json:"frequency_ab" yaml:"frequency_ab"`
	FrequencyBA    int                      `json:"frequency_ba" yaml:"frequency_ba"`
	TripsAB        int                      `json:"trips_ab" yaml:"trips_ab"`
	TripsBA        int                      `json:"trips_ba" yaml:"trips_ba"`
	TotalVehicles  int                      `json:"total_vehicles" yaml:"total_vehicles"`
	ScheduleAB     []TripEntry              `json:"schedule_ab" yaml:"schedule_ab"`
	ScheduleBA     []TripEntry              `json:"schedule_ba" yaml:"schedule_ba"`
	Utilization    map[string]VehicleUsage  `json:"utilization" yaml:"utilization"`
	RouteSchedules map[string]RouteSchedule `json:"route_schedules" yaml:"route_schedules"`
	Interlining    int                      `json:"interlining" yaml:"interlining"`
	Cost           float64                  `json:"cost" yaml:"cost"`
}

// ClassCounts counts vehicles in the utilization map per class.
func (r ScheduleResult) ClassCounts() Mix {
	var m Mix
	for _, u := range r.Utilization {
		m[u.Class]++
	}
	return m
}

// KPIData aggregates the fleet plan over every route.
type KPIData struct {
	TotalPassengers     int     `json:"total_passengers" yaml:"total_passengers"`
	TotalDistance       float64 `json:"total_distance" yaml:"total_distance"`
	TotalFuelCost       float64 `json:"total_fuel_cost" yaml:"total_fuel_cost"`
	TotalMaintenance    float64 `json:"total_maintenance_cost" yaml:"total_maintenance_cost"`
	TotalDepreciation   float64 `json:"total_depreciation_cost" yaml:"total_depreciation_cost"`
	TotalDriverCost     float64 `json:"total_driver_cost" yaml:"total_driver_cost"`
	TotalCost           float64 `json:"total_cost" yaml:"total_cost"`
	CostPerKm           float64 `json:"cost_per_km" yaml:"cost_per_km"`
	CostPerPassenger    float64 `json:"cost_per_passenger" yaml:"cost_per_passenger"`
	TotalCarbon         float64 `json:"total_carbon_emission" yaml:"total_carbon_emission"`
	CarbonPerPassenger  float64 `json:"carbon_per_passenger" yaml:"carbon_per_passenger"`
	CarbonSaved         float64 `json:"carbon_saved" yaml:"carbon_saved"`
	OptimizationSeconds float64 `json:"optimization_time_seconds" yaml:"optimization_time_seconds"`
}
