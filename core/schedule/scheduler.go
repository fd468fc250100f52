package schedule

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/logger"
	"github.com/kilianp07/transitplan/core/model"
)

// Scheduler builds timetables for a fixed set of parameters and window.
type Scheduler struct {
	Params model.Parameters
	Window model.Window
	// Tiers overrides the vehicle matching chain; nil means DefaultTiers.
	Tiers    []Tier
	Observer StepObserver
	Logger   logger.Logger
}

// NewScheduler validates the inputs and returns a Scheduler.
func NewScheduler(p model.Parameters, w model.Window, log logger.Logger) (*Scheduler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{Params: p, Window: w, Logger: logger.OrNop(log)}, nil
}

// Run is the outcome of one build at a fixed interlining level.
type Run struct {
	Result   model.ScheduleResult
	Pool     *Pool
	Repairs  RepairStats
	TierHits map[string]int
	Planned  int
	Dropped  int
}

// Build plans, assigns and repairs a timetable for the given per-route
// compositions. Every call owns a fresh vehicle pool.
func (s *Scheduler) Build(routes []model.Route, comps map[string]model.Composition, interlining int) (*Run, error) {
	if err := model.ValidateRoutes(routes); err != nil {
		return nil, err
	}
	if interlining < 0 {
		return nil, fmt.Errorf("%w: interlining %d", model.ErrInvalidParameters, interlining)
	}
	log := logger.OrNop(s.Logger)

	pool := NewPool()
	pool.Seed(routes, comps, s.Window.Start)

	trips := MergeTrips(routes, comps, s.Window)
	sim := NewSimulator(pool, routes, s.Tiers, interlining, log)
	sim.Run(trips)

	kept := retainTrips(trips, s.Window)
	reconcileTripCounts(pool, kept)

	tt := newTimetable(routes, kept)
	rp := &repairer{pool: pool, tt: tt, params: s.Params, window: s.Window, interlining: interlining, log: log}
	stats := rp.run()

	res := tt.result(pool, s.Window)
	res.Interlining = interlining
	res.Cost = TotalCost(res, routes, s.Params)

	log.Debugw("schedule built", map[string]any{
		"interlining": interlining,
		"planned":     len(trips),
		"dropped":     len(trips) - len(kept),
		"repaired":    stats.AddedTrips,
		"vehicles":    res.TotalVehicles,
		"cost":        res.Cost,
	})
	return &Run{
		Result:   res,
		Pool:     pool,
		Repairs:  stats,
		TierHits: sim.Hits(),
		Planned:  len(trips),
		Dropped:  len(trips) - len(kept),
	}, nil
}
