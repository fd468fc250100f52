package schedule

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/model"
)

// RouteSet is an insertion-ordered set of route numbers.
type RouteSet struct {
	order []string
	index map[string]struct{}
}

// Add inserts r and reports whether it was new.
func (s *RouteSet) Add(r string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[r]; ok {
		return false
	}
	s.index[r] = struct{}{}
	s.order = append(s.order, r)
	return true
}

// Has reports whether r is in the set.
func (s *RouteSet) Has(r string) bool {
	_, ok := s.index[r]
	return ok
}

// Len returns the number of routes.
func (s *RouteSet) Len() int { return len(s.order) }

// Slice returns a copy of the routes in insertion order.
func (s *RouteSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Within reports whether the set is empty or holds only r.
func (s *RouteSet) Within(r string) bool {
	return s.Len() == 0 || (s.Len() == 1 && s.Has(r))
}

// FirstTrip records how a vehicle started serving a route.
type FirstTrip struct {
	Direction model.Direction
	Origin    model.Endpoint
	Departure int
}

// Vehicle is the mutable state of one physical vehicle during a run.
type Vehicle struct {
	ID           string
	Class        model.VehicleClass
	Location     model.Endpoint
	AvailableAt  int
	Trips        int
	CurrentRoute string
	Routes       RouteSet
	// Seeded is the route the vehicle was bought for, empty for spawned vehicles.
	Seeded     string
	firstTrips map[string]FirstTrip
}

// FirstTripOn returns the first trip the vehicle made on route.
func (v *Vehicle) FirstTripOn(route string) (FirstTrip, bool) {
	ft, ok := v.firstTrips[route]
	return ft, ok
}

// Assign moves the vehicle through trip t on route r.
func (v *Vehicle) Assign(t *Trip, r model.Route) {
	if _, seen := v.firstTrips[r.RouteNo]; !seen {
		if v.firstTrips == nil {
			v.firstTrips = make(map[string]FirstTrip)
		}
		v.firstTrips[r.RouteNo] = FirstTrip{Direction: t.Direction, Origin: v.Location, Departure: t.Departure}
	}
	t.VehicleID = v.ID
	t.Class = v.Class
	v.Location = t.Direction.Destination()
	v.AvailableAt = t.Departure + r.TravelTime(t.Direction)
	v.Trips++
	v.CurrentRoute = r.RouteNo
	v.Routes.Add(r.RouteNo)
}

// IDAllocator hands out per-class sequential vehicle ids. One allocator
// belongs to one run.
type IDAllocator struct {
	next [len(model.Classes)]int
}

// Next returns the next identifier for class c, e.g. "Solo-3".
func (a *IDAllocator) Next(c model.VehicleClass) string {
	a.next[c]++
	return fmt.Sprintf("%s-%d", c.IDPrefix(), a.next[c])
}

// Pool owns the vehicles of one run in creation order.
type Pool struct {
	vehicles []*Vehicle
	byID     map[string]*Vehicle
	ids      IDAllocator
}

// NewPool returns an empty pool with its own id allocator.
func NewPool() *Pool {
	return &Pool{byID: make(map[string]*Vehicle)}
}

// Spawn creates a vehicle of class c at loc. A non-empty route pre-seeds the
// vehicle's route set.
func (p *Pool) Spawn(c model.VehicleClass, loc model.Endpoint, availableAt int, route string) *Vehicle {
	v := &Vehicle{
		ID:          p.ids.Next(c),
		Class:       c,
		Location:    loc,
		AvailableAt: availableAt,
		Seeded:      route,
	}
	if route != "" {
		v.Routes.Add(route)
		v.CurrentRoute = route
	}
	p.vehicles = append(p.vehicles, v)
	p.byID[v.ID] = v
	return v
}

// Seed creates the vehicles of every route composition. Within a class the
// vehicles alternate between endpoint A and B, starting at A.
func (p *Pool) Seed(routes []model.Route, comps map[string]model.Composition, start int) {
	for _, r := range routes {
		comp := comps[r.RouteNo]
		for _, c := range model.Classes {
			for i := 0; i < comp.Mix.Count(c); i++ {
				loc := model.EndpointA
				if i%2 == 1 {
					loc = model.EndpointB
				}
				p.Spawn(c, loc, start, r.RouteNo)
			}
		}
	}
}

// Vehicles returns the vehicles in creation order.
func (p *Pool) Vehicles() []*Vehicle { return p.vehicles }

// Get looks a vehicle up by id.
func (p *Pool) Get(id string) (*Vehicle, bool) {
	v, ok := p.byID[id]
	return v, ok
}

// Len returns the number of vehicles in the pool.
func (p *Pool) Len() int { return len(p.vehicles) }
