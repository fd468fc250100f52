package schedule

import (
	"sort"

	"github.com/kilianp07/transitplan/core/model"
)

// defaultTripCapacity is used when a route has no composition to size trips by.
const defaultTripCapacity = 100

// Trip is one departure on a route. VehicleID and Class are set once assigned.
type Trip struct {
	RouteNo   string
	Direction model.Direction
	Departure int
	VehicleID string
	Class     model.VehicleClass
}

// Assigned reports whether a vehicle serves the trip.
func (t *Trip) Assigned() bool { return t.VehicleID != "" }

// TripCount is the number of departures needed to carry peak with vehicles of
// the given capacity.
func TripCount(peak, capacity int) int {
	if peak <= 0 {
		return 0
	}
	if capacity <= 0 {
		capacity = defaultTripCapacity
	}
	return (peak + capacity - 1) / capacity
}

// Departures spreads n departures evenly over the window.
func Departures(n int, w model.Window) []int {
	out := make([]int, n)
	span := w.Minutes()
	for i := range out {
		out[i] = w.Start + i*span/max(1, n)
	}
	return out
}

// PlanTrips returns the unassigned trips of route in both directions.
func PlanTrips(route model.Route, comp model.Composition, w model.Window) (ab, ba []*Trip) {
	for _, d := range model.Directions {
		n := TripCount(route.Peak(d), comp.Capacity)
		trips := make([]*Trip, 0, n)
		for _, dep := range Departures(n, w) {
			trips = append(trips, &Trip{RouteNo: route.RouteNo, Direction: d, Departure: dep})
		}
		if d == model.AtoB {
			ab = trips
		} else {
			ba = trips
		}
	}
	return ab, ba
}

// MergeTrips plans every route and returns all trips ordered by departure.
// Equal departures keep route order, A→B before B→A.
func MergeTrips(routes []model.Route, comps map[string]model.Composition, w model.Window) []*Trip {
	var all []*Trip
	for _, r := range routes {
		ab, ba := PlanTrips(r, comps[r.RouteNo], w)
		all = append(all, ab...)
		all = append(all, ba...)
	}
	sortTrips(all)
	return all
}

func sortTrips(trips []*Trip) {
	sort.SliceStable(trips, func(i, j int) bool { return trips[i].Departure < trips[j].Departure })
}
