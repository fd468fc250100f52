package schedule

import "github.com/kilianp07/transitplan/core/model"

// TotalCost prices a schedule on the distance its trips actually drive.
// Operating cost is spread evenly over the vehicle classes in use and every
// vehicle is charged a driver over the whole distance.
func TotalCost(res model.ScheduleResult, routes []model.Route, p model.Parameters) float64 {
	var distance float64
	for _, r := range routes {
		rs, ok := res.RouteSchedules[r.RouteNo]
		if !ok {
			continue
		}
		distance += float64(len(rs.ScheduleAB))*r.LengthAtoB + float64(len(rs.ScheduleBA))*r.LengthBtoA
	}

	counts := res.ClassCounts()
	distinct := 0
	for _, c := range model.Classes {
		if counts.Count(c) > 0 {
			distinct++
		}
	}

	var total float64
	if distinct > 0 {
		share := distance / float64(distinct)
		for _, c := range model.Classes {
			total += float64(counts.Count(c)) * p.Spec(c).OperatingCostPerKm() * share
		}
	}
	total += float64(res.TotalVehicles) * p.DriverCostPerKm * distance
	return total
}
