package schedule

import (
	"math"

	"github.com/kilianp07/transitplan/core/model"
)

type routeTrips struct {
	ab, ba []*Trip
}

func (rt *routeTrips) list(d model.Direction) []*Trip {
	if d == model.BtoA {
		return rt.ba
	}
	return rt.ab
}

// timetable indexes retained trips globally and per route.
type timetable struct {
	routes  []model.Route
	ab, ba  []*Trip
	byRoute map[string]*routeTrips
}

func newTimetable(routes []model.Route, trips []*Trip) *timetable {
	tt := &timetable{routes: routes, byRoute: make(map[string]*routeTrips, len(routes))}
	for _, r := range routes {
		tt.byRoute[r.RouteNo] = &routeTrips{}
	}
	for _, t := range trips {
		tt.add(t)
	}
	return tt
}

func (tt *timetable) add(t *Trip) {
	rt, ok := tt.byRoute[t.RouteNo]
	if !ok {
		rt = &routeTrips{}
		tt.byRoute[t.RouteNo] = rt
	}
	if t.Direction == model.BtoA {
		tt.ba = append(tt.ba, t)
		rt.ba = append(rt.ba, t)
		return
	}
	tt.ab = append(tt.ab, t)
	rt.ab = append(rt.ab, t)
}

func (tt *timetable) list(route string, d model.Direction) []*Trip {
	rt, ok := tt.byRoute[route]
	if !ok {
		return nil
	}
	return rt.list(d)
}

func (tt *timetable) sort() {
	sortTrips(tt.ab)
	sortTrips(tt.ba)
	for _, rt := range tt.byRoute {
		sortTrips(rt.ab)
		sortTrips(rt.ba)
	}
}

// capacityOf sums the seat capacity of the vehicles serving trips.
func capacityOf(trips []*Trip, p model.Parameters) int {
	total := 0
	for _, t := range trips {
		total += p.Capacity(t.Class)
	}
	return total
}

// frequency is the rounded average headway of n trips over the window.
func frequency(n int, w model.Window) int {
	if n > 1 {
		return int(math.Round(float64(w.Minutes()) / float64(n-1)))
	}
	return w.Minutes()
}

func entries(trips []*Trip) []model.TripEntry {
	out := make([]model.TripEntry, len(trips))
	for i, t := range trips {
		out[i] = model.TripEntry{
			Time:      model.FormatClock(t.Departure),
			Departure: t.Departure,
			VehicleID: t.VehicleID,
			Class:     t.Class,
			RouteNo:   t.RouteNo,
		}
	}
	return out
}

// result renders the timetable. Utilization lists every vehicle serving at
// least one retained trip, with the routes of those trips.
func (tt *timetable) result(p *Pool, w model.Window) model.ScheduleResult {
	res := model.ScheduleResult{
		FrequencyAB:    frequency(len(tt.ab), w),
		FrequencyBA:    frequency(len(tt.ba), w),
		TripsAB:        len(tt.ab),
		TripsBA:        len(tt.ba),
		ScheduleAB:     entries(tt.ab),
		ScheduleBA:     entries(tt.ba),
		Utilization:    make(map[string]model.VehicleUsage),
		RouteSchedules: make(map[string]model.RouteSchedule, len(tt.routes)),
	}
	for _, r := range tt.routes {
		rt := tt.byRoute[r.RouteNo]
		res.RouteSchedules[r.RouteNo] = model.RouteSchedule{
			ScheduleAB: entries(rt.ab),
			ScheduleBA: entries(rt.ba),
			Info:       model.InfoOf(r),
		}
	}

	served := make(map[string]*RouteSet)
	for _, trips := range [][]*Trip{tt.ab, tt.ba} {
		for _, t := range trips {
			set, ok := served[t.VehicleID]
			if !ok {
				set = &RouteSet{}
				served[t.VehicleID] = set
			}
			set.Add(t.RouteNo)
		}
	}
	for _, v := range p.Vehicles() {
		set, ok := served[v.ID]
		if !ok || v.Trips == 0 {
			continue
		}
		var routes []string
		for _, r := range v.Routes.Slice() {
			if set.Has(r) {
				routes = append(routes, r)
			}
		}
		res.Utilization[v.ID] = model.VehicleUsage{Trips: v.Trips, Class: v.Class, Routes: routes}
	}
	res.TotalVehicles = len(res.Utilization)
	return res
}
