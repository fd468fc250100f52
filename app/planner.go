package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/transitplan/core/fleet"
	"github.com/kilianp07/transitplan/core/logger"
	coremetrics "github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/core/model"
	coremqtt "github.com/kilianp07/transitplan/core/mqtt"
	"github.com/kilianp07/transitplan/core/schedule"
	"github.com/kilianp07/transitplan/infra/cache"
	"github.com/kilianp07/transitplan/infra/store"
)

// ErrInvalidInput marks requests rejected before planning starts.
var ErrInvalidInput = errors.New("invalid input")

// Request is one planning job. Nil parameters and an empty window fall back
// to the planner defaults.
type Request struct {
	Routes     []model.Route     `json:"routes"`
	Parameters *model.Parameters `json:"parameters,omitempty"`
	Window     model.TimeRange   `json:"window"`
}

// Outcome is the result of Plan.
type Outcome struct {
	Run store.Run
	// Cached is true when the run was served from the result cache.
	Cached bool
}

// Planner runs the fleet optimizer and the interlining search, then records,
// persists, caches and publishes the result.
type Planner struct {
	Params    model.Parameters
	Window    model.TimeRange
	Sink      coremetrics.MetricsSink
	Store     store.RunStore
	Cache     cache.Cache
	Publisher coremqtt.Publisher
	Logger    logger.Logger

	now   func() time.Time
	newID func() string
}

// NewPlanner returns a Planner with in-memory storage and no cache,
// publisher or metrics. Callers replace the collaborators they need.
func NewPlanner(p model.Parameters, w model.TimeRange, log logger.Logger) *Planner {
	return &Planner{
		Params: p,
		Window: w,
		Sink:   coremetrics.NopSink{},
		Store:  store.NewMemoryStore(),
		Cache:  cache.Nop{},
		Logger: logger.OrNop(log),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (p *Planner) resolve(req Request) (model.Parameters, model.TimeRange, model.Window, error) {
	params := p.Params
	if req.Parameters != nil {
		params = *req.Parameters
	}
	tr := req.Window
	if tr.Start == "" && tr.End == "" {
		tr = p.Window
	}
	if len(req.Routes) == 0 {
		return params, tr, model.Window{}, fmt.Errorf("%w: no routes", ErrInvalidInput)
	}
	if err := model.ValidateRoutes(req.Routes); err != nil {
		return params, tr, model.Window{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := params.Validate(); err != nil {
		return params, tr, model.Window{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	w, err := tr.Window()
	if err != nil {
		return params, tr, model.Window{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return params, tr, w, nil
}

// Plan validates req, serves it from the cache when possible and otherwise
// computes, stores and publishes a new run. Store failures fail the call;
// cache and publisher failures are logged only.
func (p *Planner) Plan(ctx context.Context, req Request) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	params, tr, w, err := p.resolve(req)
	if err != nil {
		return Outcome{}, err
	}
	log := logger.OrNop(p.Logger)

	key, err := cache.Fingerprint(req.Routes, params, tr)
	if err != nil {
		return Outcome{}, err
	}
	if run, ok, err := p.Cache.Get(ctx, key); err != nil {
		log.Warnf("cache lookup failed: %v", err)
	} else if ok {
		log.Infof("plan %s served from cache", run.ID)
		return Outcome{Run: run, Cached: true}, nil
	}

	runID := p.newID()
	started := p.now()

	opt, err := fleet.NewOptimizer(params, log)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	plan, err := opt.Plan(req.Routes)
	if err != nil {
		return Outcome{}, fmt.Errorf("fleet plan: %w", err)
	}

	sched, err := schedule.NewScheduler(params, w, log)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sched.Observer = p.stepRecorder(runID)
	best, err := sched.Search(req.Routes, plan.Compositions)
	if err != nil {
		return Outcome{}, fmt.Errorf("schedule search: %w", err)
	}

	finished := p.now()
	elapsed := finished.Sub(started)
	plan.KPIs.OptimizationSeconds = elapsed.Seconds()

	run := store.Run{
		ID:         runID,
		CreatedAt:  finished.UTC(),
		Routes:     req.Routes,
		Parameters: params,
		Window:     tr,
		Plan:       plan,
		Schedule:   best.Result,
	}
	p.record(run, best, elapsed)

	if err := p.Store.Save(ctx, run); err != nil {
		return Outcome{}, fmt.Errorf("save run %s: %w", runID, err)
	}
	if err := p.Cache.Set(ctx, key, run); err != nil {
		log.Warnf("cache store failed: %v", err)
	}
	if p.Publisher != nil {
		msg := coremqtt.NewScheduleMessage(runID, best.Result, finished)
		if err := p.Publisher.PublishSchedule(ctx, msg); err != nil {
			log.Errorf("publish schedule %s: %v", runID, err)
		}
	}
	log.Infof("plan %s: %d routes, %d vehicles, cost %.2f, feasible=%t in %s",
		runID, len(req.Routes), best.Result.TotalVehicles, best.Result.Cost, plan.Feasible, elapsed)
	return Outcome{Run: run}, nil
}

func (p *Planner) stepRecorder(runID string) schedule.StepObserver {
	rec, ok := p.Sink.(coremetrics.SearchStepRecorder)
	if !ok {
		return nil
	}
	return func(st schedule.Step) {
		if err := rec.RecordSearchStep(coremetrics.SearchStepEvent{
			RunID:       runID,
			Interlining: st.Interlining,
			Cost:        st.Cost,
			Vehicles:    st.Vehicles,
			Trips:       st.Trips,
			Best:        st.Best,
			Time:        p.now(),
		}); err != nil {
			logger.OrNop(p.Logger).Warnf("record search step: %v", err)
		}
	}
}

func (p *Planner) record(run store.Run, best *schedule.Run, elapsed time.Duration) {
	log := logger.OrNop(p.Logger)
	res := run.Schedule
	if err := p.Sink.RecordPlan(coremetrics.PlanEvent{
		RunID:       run.ID,
		Routes:      len(run.Routes),
		Vehicles:    res.TotalVehicles,
		Trips:       res.TripsAB + res.TripsBA,
		Interlining: res.Interlining,
		Cost:        res.Cost,
		Feasible:    run.Plan.Feasible,
		Duration:    elapsed,
		Time:        run.CreatedAt,
	}); err != nil {
		log.Warnf("record plan: %v", err)
	}

	if rec, ok := p.Sink.(coremetrics.RouteFleetRecorder); ok {
		evs := make([]coremetrics.RouteFleetEvent, 0, len(run.Plan.Results))
		for _, r := range run.Plan.Results {
			evs = append(evs, coremetrics.RouteFleetEvent{
				RunID:       run.ID,
				RouteNo:     r.RouteNo,
				Mix:         r.Mix(),
				Cost:        r.TotalCost,
				CO2:         r.CarbonEmission,
				Utilization: r.CapacityUtilization,
				LowerBound:  r.LowerBound,
				Time:        run.CreatedAt,
			})
		}
		if err := rec.RecordRouteFleet(evs); err != nil {
			log.Warnf("record route fleet: %v", err)
		}
	}

	if rec, ok := p.Sink.(coremetrics.AssignmentRecorder); ok {
		if err := rec.RecordAssignment(coremetrics.AssignmentEvent{
			RunID:            run.ID,
			TierHits:         best.TierHits,
			RepairTrips:      best.Repairs.AddedTrips,
			SpawnedVehicles:  best.Repairs.SpawnedVehicles,
			DroppedTrips:     best.Dropped,
			MissingDirection: best.Repairs.MissingDirection,
			Time:             run.CreatedAt,
		}); err != nil {
			log.Warnf("record assignment: %v", err)
		}
	}
}

// Get returns a stored run.
func (p *Planner) Get(ctx context.Context, id string) (store.Run, error) {
	return p.Store.Get(ctx, id)
}

// List returns the newest stored runs.
func (p *Planner) List(ctx context.Context, limit int) ([]store.Summary, error) {
	return p.Store.List(ctx, limit)
}
