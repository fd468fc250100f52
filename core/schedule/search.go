package schedule

import (
	"github.com/kilianp07/transitplan/core/logger"
	"github.com/kilianp07/transitplan/core/model"
)

// Step reports one evaluated interlining level.
type Step struct {
	Interlining int
	Cost        float64
	Vehicles    int
	Trips       int
	Best        bool
}

// StepObserver receives every step of the interlining search.
type StepObserver func(Step)

// Search builds the timetable for interlining levels 0..Params.MaxInterlining
// and returns the cheapest. A level that costs no more than the best so far
// replaces it; the scan stops at the first level that costs more.
func (s *Scheduler) Search(routes []model.Route, comps map[string]model.Composition) (*Run, error) {
	best, err := s.Build(routes, comps, 0)
	if err != nil {
		return nil, err
	}
	s.observe(best, true)

	for k := 1; k <= s.Params.MaxInterlining; k++ {
		run, err := s.Build(routes, comps, k)
		if err != nil {
			return nil, err
		}
		if run.Result.Cost > best.Result.Cost {
			s.observe(run, false)
			break
		}
		s.observe(run, true)
		best = run
	}
	logger.OrNop(s.Logger).Infof("interlining search picked level %d at cost %.2f with %d vehicles",
		best.Result.Interlining, best.Result.Cost, best.Result.TotalVehicles)
	return best, nil
}

func (s *Scheduler) observe(run *Run, best bool) {
	if s.Observer == nil {
		return
	}
	s.Observer(Step{
		Interlining: run.Result.Interlining,
		Cost:        run.Result.Cost,
		Vehicles:    run.Result.TotalVehicles,
		Trips:       run.Result.TripsAB + run.Result.TripsBA,
		Best:        best,
	})
}

// Search is a one-shot helper around Scheduler.Search.
func Search(routes []model.Route, comps map[string]model.Composition, p model.Parameters, w model.Window, observer StepObserver) (model.ScheduleResult, error) {
	s, err := NewScheduler(p, w, nil)
	if err != nil {
		return model.ScheduleResult{}, err
	}
	s.Observer = observer
	run, err := s.Search(routes, comps)
	if err != nil {
		return model.ScheduleResult{}, err
	}
	return run.Result, nil
}
