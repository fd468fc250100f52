package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/transitplan/core/model"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json, yaml, yml and csv.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Report is the document written for a planning run.
type Report struct {
	RunID    string                     `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Results  []model.OptimizationResult `json:"optimization_results" yaml:"optimization_results"`
	KPIs     model.KPIData              `json:"kpi" yaml:"kpi"`
	Schedule model.ScheduleResult       `json:"schedule" yaml:"schedule"`
}

// Write encodes r in the given format. CSV carries the timetable only.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatCSV:
		return WriteCSV(w, r.Schedule)
	default:
		return WriteJSON(w, r)
	}
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v to w as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes the timetable to w, A→B departures first.
func WriteCSV(w io.Writer, res model.ScheduleResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"direction", "route_no", "time", "departure", "vehicle_id", "class"}); err != nil {
		return err
	}
	for _, d := range model.Directions {
		entries := res.ScheduleAB
		if d == model.BtoA {
			entries = res.ScheduleBA
		}
		for _, e := range entries {
			rec := []string{
				d.String(),
				e.RouteNo,
				e.Time,
				strconv.Itoa(e.Departure),
				e.VehicleID,
				e.Class.String(),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
