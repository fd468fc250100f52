package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/transitplan/core/fleet"
	coremetrics "github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/core/schedule"
	"github.com/kilianp07/transitplan/infra/cache"
	"github.com/kilianp07/transitplan/infra/mqtt"
	"github.com/kilianp07/transitplan/infra/store"
)

func testParams() model.Parameters {
	return model.Parameters{
		Minibus:         model.ClassSpec{Capacity: 60, FuelCost: 16, FleetCount: 10},
		Solo:            model.ClassSpec{Capacity: 100, FuelCost: 20, FleetCount: 10},
		Articulated:     model.ClassSpec{Capacity: 150, FuelCost: 28, FleetCount: 10},
		DriverCostPerKm: 38,
		MaxInterlining:  2,
	}
}

func testRoutes() []model.Route {
	return []model.Route{
		{RouteNo: "1", RouteName: "Centre - Harbour", LengthAtoB: 10, LengthBtoA: 9, TravelTimeAtoB: 30, TravelTimeBtoA: 28, PeakAtoB: 200, PeakBtoA: 180},
		{RouteNo: "2", RouteName: "Campus", LengthAtoB: 6, LengthBtoA: 6, TravelTimeAtoB: 20, TravelTimeBtoA: 20, PeakAtoB: 90, PeakBtoA: 40},
	}
}

var morning = model.TimeRange{Start: "06:00", End: "09:00"}

type recordingSink struct {
	mu     sync.Mutex
	plans  []coremetrics.PlanEvent
	steps  []coremetrics.SearchStepEvent
	fleets []coremetrics.RouteFleetEvent
	assign []coremetrics.AssignmentEvent
}

func (s *recordingSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, ev)
	return nil
}

func (s *recordingSink) RecordSearchStep(ev coremetrics.SearchStepEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, ev)
	return nil
}

func (s *recordingSink) RecordRouteFleet(evs []coremetrics.RouteFleetEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fleets = append(s.fleets, evs...)
	return nil
}

func (s *recordingSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assign = append(s.assign, ev)
	return nil
}

type failingStore struct{ *store.MemoryStore }

func (failingStore) Save(context.Context, store.Run) error { return fmt.Errorf("disk full") }

func newTestPlanner() *Planner {
	p := NewPlanner(testParams(), morning, nil)
	n := 0
	p.newID = func() string { n++; return fmt.Sprintf("run-%d", n) }
	clock := time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC)
	p.now = func() time.Time { clock = clock.Add(time.Second); return clock }
	return p
}

func TestPlanMatchesEngine(t *testing.T) {
	p := newTestPlanner()
	sink := &recordingSink{}
	pub := mqtt.NewMockPublisher()
	p.Sink = sink
	p.Publisher = pub

	out, err := p.Plan(context.Background(), Request{Routes: testRoutes()})
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Equal(t, "run-1", out.Run.ID)

	w, err := morning.Window()
	require.NoError(t, err)
	opt, err := fleet.NewOptimizer(testParams(), nil)
	require.NoError(t, err)
	plan, err := opt.Plan(testRoutes())
	require.NoError(t, err)
	want, err := schedule.Search(testRoutes(), plan.Compositions, testParams(), w, nil)
	require.NoError(t, err)
	assert.Equal(t, want, out.Run.Schedule)
	assert.Equal(t, plan.Results, out.Run.Plan.Results)
	assert.Greater(t, out.Run.Plan.KPIs.OptimizationSeconds, 0.0)

	stored, err := p.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, out.Run.Schedule.Cost, stored.Schedule.Cost)

	require.Len(t, sink.plans, 1)
	assert.Equal(t, "run-1", sink.plans[0].RunID)
	assert.Equal(t, want.TotalVehicles, sink.plans[0].Vehicles)
	assert.NotEmpty(t, sink.steps)
	assert.Equal(t, 0, sink.steps[0].Interlining)
	require.Len(t, sink.fleets, 2)
	assert.Equal(t, "2", sink.fleets[1].RouteNo)
	for i, ev := range sink.fleets {
		assert.Equal(t, plan.Results[i].CapacityUtilization, ev.Utilization)
		assert.Equal(t, plan.Results[i].LowerBound, ev.LowerBound)
		assert.LessOrEqual(t, ev.LowerBound, ev.Cost+1e-9)
	}
	require.Len(t, sink.assign, 1)

	msgs := pub.Published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "run-1", msgs[0].RunID)
	assert.Len(t, msgs[0].Trips, want.TripsAB+want.TripsBA)
}

func TestPlanUsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisCache(context.Background(), cache.Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	p := newTestPlanner()
	p.Cache = rc
	first, err := p.Plan(context.Background(), Request{Routes: testRoutes()})
	require.NoError(t, err)
	second, err := p.Plan(context.Background(), Request{Routes: testRoutes()})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Run.ID, second.Run.ID)

	params := testParams()
	params.MaxInterlining = 0
	third, err := p.Plan(context.Background(), Request{Routes: testRoutes(), Parameters: &params})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, "run-2", third.Run.ID)
	assert.Equal(t, 0, third.Run.Parameters.MaxInterlining)

	list, err := p.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPlanInvalidInput(t *testing.T) {
	p := newTestPlanner()
	bad := testParams()
	bad.Solo.Capacity = 0
	cases := map[string]Request{
		"no routes":   {},
		"bad route":   {Routes: []model.Route{{RouteNo: "1"}}},
		"bad params":  {Routes: testRoutes(), Parameters: &bad},
		"bad window":  {Routes: testRoutes(), Window: model.TimeRange{Start: "09:00", End: "08:00"}},
		"half window": {Routes: testRoutes(), Window: model.TimeRange{Start: "09:00"}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.Plan(context.Background(), req)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestPlanStoreFailureFails(t *testing.T) {
	p := newTestPlanner()
	p.Store = failingStore{store.NewMemoryStore()}
	_, err := p.Plan(context.Background(), Request{Routes: testRoutes()})
	assert.Error(t, err)
}

func TestPlanPublishFailureIsBestEffort(t *testing.T) {
	p := newTestPlanner()
	pub := mqtt.NewMockPublisher()
	pub.FailRuns["run-1"] = true
	p.Publisher = pub
	out, err := p.Plan(context.Background(), Request{Routes: testRoutes()})
	require.NoError(t, err)
	assert.Equal(t, "run-1", out.Run.ID)
	assert.Empty(t, pub.Published())
}

func TestPlanCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPlanner().Plan(ctx, Request{Routes: testRoutes()})
	assert.ErrorIs(t, err, context.Canceled)
}
