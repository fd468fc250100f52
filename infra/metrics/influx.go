package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/infra/logger"
)

// InfluxConfig selects the InfluxDB endpoint of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes planning events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) write(points ...*write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordPlan writes one plan_run point.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	p := write.NewPointWithMeasurement("plan_run").
		AddTag("run_id", ev.RunID).
		AddTag("feasible", strconv.FormatBool(ev.Feasible)).
		AddField("routes", ev.Routes).
		AddField("vehicles", ev.Vehicles).
		AddField("trips", ev.Trips).
		AddField("interlining", ev.Interlining).
		AddField("cost", round3(ev.Cost)).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordSearchStep writes one point per interlining level.
func (s *InfluxSink) RecordSearchStep(ev coremetrics.SearchStepEvent) error {
	p := write.NewPointWithMeasurement("interlining_step").
		AddTag("run_id", ev.RunID).
		AddTag("interlining", strconv.Itoa(ev.Interlining)).
		AddTag("best", strconv.FormatBool(ev.Best)).
		AddField("cost", round3(ev.Cost)).
		AddField("vehicles", ev.Vehicles).
		AddField("trips", ev.Trips).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordRouteFleet writes the composition of every route.
func (s *InfluxSink) RecordRouteFleet(evs []coremetrics.RouteFleetEvent) error {
	points := make([]*write.Point, 0, len(evs))
	for _, ev := range evs {
		points = append(points, write.NewPointWithMeasurement("route_fleet").
			AddTag("run_id", ev.RunID).
			AddTag("route", ev.RouteNo).
			AddField("minibus", ev.Mix.Count(model.Minibus)).
			AddField("solo", ev.Mix.Count(model.Solo)).
			AddField("articulated", ev.Mix.Count(model.Articulated)).
			AddField("cost", round3(ev.Cost)).
			AddField("co2", round3(ev.CO2)).
			AddField("utilization", round3(ev.Utilization)).
			AddField("lower_bound", round3(ev.LowerBound)).
			SetTime(ev.Time))
	}
	if len(points) == 0 {
		return nil
	}
	return s.write(points...)
}

// RecordAssignment writes tier hits and repair statistics as one point.
func (s *InfluxSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	p := write.NewPointWithMeasurement("assignment").
		AddTag("run_id", ev.RunID).
		AddField("repair_trips", ev.RepairTrips).
		AddField("spawned_vehicles", ev.SpawnedVehicles).
		AddField("dropped_trips", ev.DroppedTrips).
		AddField("missing_direction", ev.MissingDirection).
		SetTime(ev.Time)
	for tier, n := range ev.TierHits {
		p.AddField("tier_"+tier, n)
	}
	return s.write(p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
