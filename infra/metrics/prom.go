package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	cost     prometheus.Gauge
	vehicles prometheus.Gauge
	steps    *prometheus.CounterVec
	fleet    *prometheus.GaugeVec
	co2      *prometheus.GaugeVec
	gap      *prometheus.GaugeVec
	tiers    *prometheus.CounterVec
	repairs  *prometheus.CounterVec
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// register adds c to reg, reusing an identical collector that is already there.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transitplan_runs_total",
		Help: "Total number of planning runs",
	}, []string{"feasible"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitplan_run_duration_seconds",
		Help:    "Wall clock time of a planning run",
		Buckets: prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if s.cost, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transitplan_schedule_cost",
		Help: "Operating cost of the last selected schedule",
	})); err != nil {
		return nil, err
	}
	if s.vehicles, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transitplan_schedule_vehicles",
		Help: "Vehicles used by the last selected schedule",
	})); err != nil {
		return nil, err
	}
	if s.steps, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transitplan_search_steps_total",
		Help: "Interlining levels evaluated",
	}, []string{"interlining", "best"})); err != nil {
		return nil, err
	}
	if s.fleet, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transitplan_route_fleet_vehicles",
		Help: "Vehicles chosen per route and class",
	}, []string{"route", "class"})); err != nil {
		return nil, err
	}
	if s.co2, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transitplan_route_co2_kg",
		Help: "CO2 emitted per route for one round trip of its fleet",
	}, []string{"route"})); err != nil {
		return nil, err
	}
	if s.gap, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transitplan_route_cost_gap",
		Help: "Route fleet cost above its relaxed lower bound",
	}, []string{"route"})); err != nil {
		return nil, err
	}
	if s.tiers, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transitplan_assignment_tier_trips_total",
		Help: "Trips served by each vehicle matching tier",
	}, []string{"tier"})); err != nil {
		return nil, err
	}
	if s.repairs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transitplan_repair_total",
		Help: "Trips and vehicles added by the capacity repair pass",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordPlan counts the run and updates the last-run gauges.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.runs.WithLabelValues(strconv.FormatBool(ev.Feasible)).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.cost.Set(ev.Cost)
	s.vehicles.Set(float64(ev.Vehicles))
	return nil
}

// RecordSearchStep counts an evaluated interlining level.
func (s *PromSink) RecordSearchStep(ev coremetrics.SearchStepEvent) error {
	s.steps.WithLabelValues(strconv.Itoa(ev.Interlining), strconv.FormatBool(ev.Best)).Inc()
	return nil
}

// RecordRouteFleet sets the per-route composition gauges.
func (s *PromSink) RecordRouteFleet(evs []coremetrics.RouteFleetEvent) error {
	for _, ev := range evs {
		for _, c := range model.Classes {
			s.fleet.WithLabelValues(ev.RouteNo, c.String()).Set(float64(ev.Mix.Count(c)))
		}
		s.co2.WithLabelValues(ev.RouteNo).Set(ev.CO2)
		s.gap.WithLabelValues(ev.RouteNo).Set(ev.Cost - ev.LowerBound)
	}
	return nil
}

// RecordAssignment adds tier hits and repair counts.
func (s *PromSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	for tier, n := range ev.TierHits {
		s.tiers.WithLabelValues(tier).Add(float64(n))
	}
	s.repairs.WithLabelValues("trips").Add(float64(ev.RepairTrips))
	s.repairs.WithLabelValues("vehicles").Add(float64(ev.SpawnedVehicles))
	s.repairs.WithLabelValues("dropped").Add(float64(ev.DroppedTrips))
	return nil
}
