// Package metrics defines the sinks planning runs report to. A sink records
// PlanEvent; richer sinks also implement the optional recorder interfaces for
// search steps, route compositions and assignment statistics. Concrete sinks
// live in infra/metrics and register themselves by name, so configuration can
// select several of them and receive a MultiSink.
package metrics
