package schedule

import "github.com/kilianp07/transitplan/core/model"

// Request is a trip waiting for a vehicle.
type Request struct {
	Trip        *Trip
	Interlining int
}

// Origin is the endpoint the vehicle must be at.
func (r *Request) Origin() model.Endpoint { return r.Trip.Direction.Origin() }

// Eligible applies the interlining rule to v for this request. With no
// interlining a vehicle must be unused or dedicated to the trip route.
// Otherwise it must serve the route already, or take on a new route only
// while under the limit and only for an A→B departure from A.
func (r *Request) Eligible(v *Vehicle) bool {
	route := r.Trip.RouteNo
	if r.Interlining == 0 {
		return v.Routes.Within(route)
	}
	if v.Routes.Has(route) {
		return true
	}
	return v.Routes.Len() < r.Interlining && r.Trip.Direction == model.AtoB && r.Origin() == model.EndpointA
}

// Matcher picks a vehicle for the request or returns nil. A matcher may adjust
// the trip departure or the chosen vehicle before it is assigned.
type Matcher func(p *Pool, req *Request) *Vehicle

// Tier names a matcher in the fallback chain.
type Tier struct {
	Name  string
	Match Matcher
}

// Tier names.
const (
	TierFirstFit          = "first_fit"
	TierEarliestAvailable = "earliest_available"
	TierLeastUsed         = "least_used_relocation"
	TierSpawn             = "spawn"
)

// DefaultTiers is the relaxation ladder used by the simulator. The final tier
// never fails.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: TierFirstFit, Match: firstFit},
		{Name: TierEarliestAvailable, Match: earliestAvailable},
		{Name: TierLeastUsed, Match: leastUsedRelocation},
		{Name: TierSpawn, Match: spawn},
	}
}

// firstFit returns the first vehicle in pool order that is at the origin,
// already free and eligible.
func firstFit(p *Pool, req *Request) *Vehicle {
	for _, v := range p.Vehicles() {
		if v.Location == req.Origin() && v.AvailableAt <= req.Trip.Departure && req.Eligible(v) {
			return v
		}
	}
	return nil
}

// earliestAvailable picks the eligible vehicle at the origin that frees up
// first and delays the trip until then.
func earliestAvailable(p *Pool, req *Request) *Vehicle {
	var best *Vehicle
	for _, v := range p.Vehicles() {
		if v.Location != req.Origin() || !req.Eligible(v) {
			continue
		}
		if best == nil || v.AvailableAt < best.AvailableAt {
			best = v
		}
	}
	if best != nil {
		req.Trip.Departure = max(req.Trip.Departure, best.AvailableAt)
	}
	return best
}

// leastUsedRelocation moves the least used eligible vehicle to the origin.
func leastUsedRelocation(p *Pool, req *Request) *Vehicle {
	var best *Vehicle
	for _, v := range p.Vehicles() {
		if !req.Eligible(v) {
			continue
		}
		if best == nil || v.Trips < best.Trips {
			best = v
		}
	}
	if best != nil {
		best.Location = req.Origin()
		best.AvailableAt = req.Trip.Departure
	}
	return best
}

// spawn adds a fresh minibus at the origin.
func spawn(p *Pool, req *Request) *Vehicle {
	return p.Spawn(model.Minibus, req.Origin(), req.Trip.Departure, "")
}
