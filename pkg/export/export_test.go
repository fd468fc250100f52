package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/transitplan/core/model"
)

func sampleReport() Report {
	return Report{
		RunID:   "run-1",
		Results: []model.OptimizationResult{{RouteNo: "1", Solo: 2, TotalCost: 2204}},
		KPIs:    model.KPIData{TotalPassengers: 200, TotalCost: 2204},
		Schedule: model.ScheduleResult{
			TotalVehicles: 2,
			ScheduleAB:    []model.TripEntry{{Time: "06:00", Departure: 360, VehicleID: "Solo-1", Class: model.Solo, RouteNo: "1"}},
			ScheduleBA:    []model.TripEntry{{Time: "06:00", Departure: 360, VehicleID: "Solo-2", Class: model.Solo, RouteNo: "1"}},
			Utilization:   map[string]model.VehicleUsage{"Solo-1": {Trips: 1, Class: model.Solo, Routes: []string{"1"}}},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got["run_id"])
	sched := got["schedule"].(map[string]any)
	ab := sched["schedule_ab"].([]any)[0].(map[string]any)
	assert.Equal(t, "solo", ab["class"])
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleReport()))
	assert.Contains(t, buf.String(), "class: solo")

	var back Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, model.Solo, back.Schedule.ScheduleBA[0].Class)
	assert.Equal(t, 2204.0, back.KPIs.TotalCost)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleReport()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"direction", "route_no", "time", "departure", "vehicle_id", "class"}, rows[0])
	assert.Equal(t, []string{"AtoB", "1", "06:00", "360", "Solo-1", "solo"}, rows[1])
	assert.Equal(t, "BtoA", rows[2][0])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "yml": FormatYAML, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
