package schedule

import (
	"github.com/kilianp07/transitplan/core/logger"
	"github.com/kilianp07/transitplan/core/model"
)

// Simulator assigns vehicles to trips in departure order.
type Simulator struct {
	pool        *Pool
	routes      map[string]model.Route
	tiers       []Tier
	interlining int
	log         logger.Logger
	hits        map[string]int
}

// NewSimulator prepares a simulation over pool. Nil tiers select DefaultTiers.
func NewSimulator(pool *Pool, routes []model.Route, tiers []Tier, interlining int, log logger.Logger) *Simulator {
	if tiers == nil {
		tiers = DefaultTiers()
	}
	byNo := make(map[string]model.Route, len(routes))
	for _, r := range routes {
		byNo[r.RouteNo] = r
	}
	return &Simulator{
		pool:        pool,
		routes:      byNo,
		tiers:       tiers,
		interlining: interlining,
		log:         logger.OrNop(log),
		hits:        make(map[string]int, len(tiers)),
	}
}

// Run walks trips in order and assigns each through the tier chain. Trips
// must already be sorted by departure. A trip no tier can serve stays
// unassigned.
func (s *Simulator) Run(trips []*Trip) {
	for _, t := range trips {
		route, ok := s.routes[t.RouteNo]
		if !ok {
			s.log.Warnf("trip on unknown route %s skipped", t.RouteNo)
			continue
		}
		req := &Request{Trip: t, Interlining: s.interlining}
		for _, tier := range s.tiers {
			v := tier.Match(s.pool, req)
			if v == nil {
				continue
			}
			v.Assign(t, route)
			s.hits[tier.Name]++
			break
		}
		if !t.Assigned() {
			s.log.Debugw("trip left unassigned", map[string]any{"route": t.RouteNo, "direction": t.Direction.String(), "departure": t.Departure})
		}
	}
}

// Hits returns how many trips each tier served.
func (s *Simulator) Hits() map[string]int {
	out := make(map[string]int, len(s.hits))
	for k, v := range s.hits {
		out[k] = v
	}
	return out
}

// retainTrips keeps the assigned trips whose final departure lies in w.
func retainTrips(trips []*Trip, w model.Window) []*Trip {
	kept := make([]*Trip, 0, len(trips))
	for _, t := range trips {
		if t.Assigned() && w.Contains(t.Departure) {
			kept = append(kept, t)
		}
	}
	return kept
}

// reconcileTripCounts sets every vehicle's trip count to the trips it serves
// in trips. Vehicle position and availability keep the effect of dropped trips.
func reconcileTripCounts(p *Pool, trips []*Trip) {
	counts := make(map[string]int, p.Len())
	for _, t := range trips {
		counts[t.VehicleID]++
	}
	for _, v := range p.Vehicles() {
		v.Trips = counts[v.ID]
	}
}
