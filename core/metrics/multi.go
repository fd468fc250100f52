package metrics

// MultiSink fans events out to several sinks. Optional recorders are only
// called on sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlan(ev PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSearchStep forwards search steps.
func (m *MultiSink) RecordSearchStep(ev SearchStepEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SearchStepRecorder); ok {
			if err := rec.RecordSearchStep(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRouteFleet forwards route compositions.
func (m *MultiSink) RecordRouteFleet(evs []RouteFleetEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RouteFleetRecorder); ok {
			if err := rec.RecordRouteFleet(evs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordAssignment forwards assignment statistics.
func (m *MultiSink) RecordAssignment(ev AssignmentEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(AssignmentRecorder); ok {
			if err := rec.RecordAssignment(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
