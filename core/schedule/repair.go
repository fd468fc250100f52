package schedule

import (
	"math"

	"github.com/kilianp07/transitplan/core/logger"
	"github.com/kilianp07/transitplan/core/model"
)

// maxRepairTrips caps how busy a vehicle may be to pick up a repair trip.
const maxRepairTrips = 5

// RepairStats counts what the repair pass added.
type RepairStats struct {
	AddedTrips       int `json:"added_trips"`
	SpawnedVehicles  int `json:"spawned_vehicles"`
	MissingDirection int `json:"missing_direction"`
}

type repairer struct {
	pool        *Pool
	tt          *timetable
	params      model.Parameters
	window      model.Window
	interlining int
	log         logger.Logger
	stats       RepairStats
}

// run tops up every route direction to its peak, then gives each empty
// direction a single trip.
func (rp *repairer) run() RepairStats {
	for _, r := range rp.tt.routes {
		for _, d := range model.Directions {
			rp.fillCapacity(r, d)
		}
	}
	for _, r := range rp.tt.routes {
		for _, d := range model.Directions {
			if len(rp.tt.list(r.RouteNo, d)) == 0 {
				rp.addMissingDirection(r, d)
			}
		}
	}
	rp.tt.sort()
	return rp.stats
}

func (rp *repairer) fillCapacity(r model.Route, d model.Direction) {
	peak := r.Peak(d)
	for {
		existing := rp.tt.list(r.RouteNo, d)
		achieved := capacityOf(existing, rp.params)
		if achieved >= peak {
			return
		}
		best := rp.bestCapacity(r)
		needed := (peak - achieved + best - 1) / best
		preferred := preferredClass(existing)
		n := len(existing)
		span := float64(rp.window.Minutes())
		rp.log.Debugw("capacity shortfall", map[string]any{
			"route": r.RouteNo, "direction": d.String(), "peak": peak, "achieved": achieved, "trips": needed,
		})
		for i := 0; i < needed; i++ {
			dep := rp.window.Start + int(math.Floor((float64(n+i)+0.5)*span/float64(n+needed)))
			t := &Trip{RouteNo: r.RouteNo, Direction: d, Departure: dep}
			rp.vehicleFor(t, preferred).Assign(t, r)
			rp.tt.add(t)
			rp.stats.AddedTrips++
		}
	}
}

// bestCapacity is the largest class capacity already used on the route in
// either direction, or the largest configured capacity.
func (rp *repairer) bestCapacity(r model.Route) int {
	best := 0
	for _, d := range model.Directions {
		for _, t := range rp.tt.list(r.RouteNo, d) {
			best = max(best, rp.params.Capacity(t.Class))
		}
	}
	if best == 0 {
		best = rp.params.Capacity(rp.params.LargestClass())
	}
	return best
}

// preferredClass is the largest class used by trips, solo when there are none.
func preferredClass(trips []*Trip) model.VehicleClass {
	if len(trips) == 0 {
		return model.Solo
	}
	best := model.Minibus
	for _, t := range trips {
		if t.Class > best {
			best = t.Class
		}
	}
	return best
}

// vehicleFor finds a free vehicle at the trip origin, first of the preferred
// class and then of any class, and spawns one of the preferred class otherwise.
func (rp *repairer) vehicleFor(t *Trip, preferred model.VehicleClass) *Vehicle {
	req := &Request{Trip: t, Interlining: rp.interlining}
	usable := func(v *Vehicle) bool {
		return v.Location == req.Origin() && v.AvailableAt <= t.Departure && v.Trips < maxRepairTrips && req.Eligible(v)
	}
	for _, v := range rp.pool.Vehicles() {
		if v.Class == preferred && usable(v) {
			return v
		}
	}
	for _, v := range rp.pool.Vehicles() {
		if usable(v) {
			return v
		}
	}
	rp.stats.SpawnedVehicles++
	return rp.pool.Spawn(preferred, req.Origin(), rp.window.Start, "")
}

func (rp *repairer) addMissingDirection(r model.Route, d model.Direction) {
	t := &Trip{RouteNo: r.RouteNo, Direction: d, Departure: rp.window.Start + rp.window.Minutes()/2}
	v := rp.pool.Spawn(model.Minibus, d.Origin(), t.Departure, r.RouteNo)
	v.Assign(t, r)
	rp.tt.add(t)
	rp.stats.AddedTrips++
	rp.stats.SpawnedVehicles++
	rp.stats.MissingDirection++
	rp.log.Infof("route %s had no %s trips, added one at %s", r.RouteNo, d, model.FormatClock(t.Departure))
}
