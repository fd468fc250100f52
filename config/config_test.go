package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/transitplan/core/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `planner:
  parameters:
    minibus: {capacity: 60, fuel_cost: 16, fleet_count: 4}
    solo: {capacity: 100, fuel_cost: 20, fleet_count: 6}
    articulated: {capacity: 150, fuel_cost: 28, fleet_count: 2}
    driver_cost: 38
    max_interlining: 2
  window:
    start: "06:00"
    end: "09:00"
input:
  routes_csv: routes.csv
store:
  type: sqlite
  conf:
    path: runs.db
cache:
  url: redis://localhost:6379/0
  ttl: 30m
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "planner"
  topic_prefix: "transit/schedule"
  retained: true
  qos:
    schedule: 1
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
http:
  addr: ":8081"
  rate_limit: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"solo.capacity", cfg.Planner.Parameters.Solo.Capacity, 100},
		{"articulated.fuel_cost", cfg.Planner.Parameters.Articulated.FuelCost, 28.0},
		{"driver_cost", cfg.Planner.Parameters.DriverCostPerKm, 38.0},
		{"max_interlining", cfg.Planner.Parameters.MaxInterlining, 2},
		{"window.start", cfg.Planner.Window.Start, "06:00"},
		{"routes_csv", cfg.Input.RoutesCSV, "routes.csv"},
		{"store.type", cfg.Store.Type, "sqlite"},
		{"store.path", cfg.Store.Conf["path"], "runs.db"},
		{"cache.ttl", cfg.Cache.TTL, 30 * time.Minute},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.retained", cfg.MQTT.Retained, true},
		{"mqtt.qos", cfg.MQTT.QoS["schedule"], byte(1)},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"http.addr", cfg.HTTP.Addr, ":8081"},
		{"http.burst", cfg.HTTP.Burst, 1},
		{"logging.level", cfg.Logging.Level, "info"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultParameters(), cfg.Planner.Parameters)
	assert.Equal(t, model.TimeRange{Start: "07:00", End: "08:00"}, cfg.Planner.Window)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadPartialParametersKeepDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{"planner":{"parameters":{"solo":{"capacity":90,"fuel_cost":1}}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	def := model.DefaultParameters()
	p := cfg.Planner.Parameters
	assert.Equal(t, 90, p.Solo.Capacity)
	assert.Equal(t, 1.0, p.Solo.FuelCost)
	assert.Equal(t, def.Solo.MaintenanceCost, p.Solo.MaintenanceCost)
	assert.Equal(t, def.Solo.FleetCount, p.Solo.FleetCount)
	assert.Equal(t, def.Minibus, p.Minibus)
	assert.Equal(t, def.DriverCostPerKm, p.DriverCostPerKm)
}

func TestLoadExplicitZeroDriverCost(t *testing.T) {
	path := writeConfig(t, "config.yaml", "planner:\n  parameters:\n    driver_cost: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Planner.Parameters.DriverCostPerKm)
	assert.Equal(t, model.DefaultParameters().Solo, cfg.Planner.Parameters.Solo)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.yaml", "planner:\n  window:\n    start: \"06:00\"\n    end: \"09:00\"\n")
	t.Setenv("K_PLANNER__PARAMETERS__MAX_INTERLINING", "3")
	t.Setenv("K_PLANNER__WINDOW__END", "10:30")
	t.Setenv("K_HTTP__ADDR", ":9999")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Planner.Parameters.MaxInterlining)
	assert.Equal(t, "10:30", cfg.Planner.Window.End)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "06:00", cfg.Planner.Window.Start)
	assert.Equal(t, model.DefaultParameters().DriverCostPerKm, cfg.Planner.Parameters.DriverCostPerKm)
}

func TestEnvOverridesWithoutFile(t *testing.T) {
	t.Setenv("K_PLANNER__PARAMETERS__SOLO__CAPACITY", "120")
	t.Setenv("K_STORE__TYPE", "sqlite")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Planner.Parameters.Solo.Capacity)
	assert.Equal(t, model.DefaultParameters().Solo.FuelCost, cfg.Planner.Parameters.Solo.FuelCost)
	assert.Equal(t, "sqlite", cfg.Store.Type)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", ""))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "planner:\n  window:\n    start: \"09:00\"\n    end: \"08:00\"\n"))
	assert.ErrorIs(t, err, model.ErrInvalidWindow)

	_, err = Load(writeConfig(t, "neg.yaml", "planner:\n  parameters:\n    max_interlining: -1\n"))
	assert.ErrorIs(t, err, model.ErrInvalidParameters)

	_, err = Load(writeConfig(t, "log.yaml", "logging:\n  level: loud\n"))
	assert.Error(t, err)
}
