package metrics

import (
	"time"

	"github.com/kilianp07/transitplan/core/model"
)

// PlanEvent summarises one completed planning run.
type PlanEvent struct {
	RunID       string
	Routes      int
	Vehicles    int
	Trips       int
	Interlining int
	Cost        float64
	Feasible    bool
	Duration    time.Duration
	Time        time.Time
}

// MetricsSink records planning runs for observability purposes.
type MetricsSink interface {
	RecordPlan(ev PlanEvent) error
}

// SearchStepEvent is one level evaluated by the interlining search.
type SearchStepEvent struct {
	RunID       string
	Interlining int
	Cost        float64
	Vehicles    int
	Trips       int
	Best        bool
	Time        time.Time
}

// SearchStepRecorder records interlining search steps.
type SearchStepRecorder interface {
	RecordSearchStep(ev SearchStepEvent) error
}

// RouteFleetEvent is the composition chosen for one route.
type RouteFleetEvent struct {
	RunID   string
	RouteNo string
	Mix     model.Mix
	Cost    float64
	CO2     float64
	// Utilization is the mean demand over capacity of both directions.
	Utilization float64
	LowerBound  float64
	Time        time.Time
}

// RouteFleetRecorder records per-route fleet compositions.
type RouteFleetRecorder interface {
	RecordRouteFleet(evs []RouteFleetEvent) error
}

// AssignmentEvent counts trips served by each matching tier, plus what the
// repair pass had to add.
type AssignmentEvent struct {
	RunID            string
	TierHits         map[string]int
	RepairTrips      int
	SpawnedVehicles  int
	DroppedTrips     int
	MissingDirection int
	Time             time.Time
}

// AssignmentRecorder records vehicle assignment statistics.
type AssignmentRecorder interface {
	RecordAssignment(ev AssignmentEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error               { return nil }
func (NopSink) RecordSearchStep(SearchStepEvent) error   { return nil }
func (NopSink) RecordRouteFleet([]RouteFleetEvent) error { return nil }
func (NopSink) RecordAssignment(AssignmentEvent) error   { return nil }
