package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transitplan/app"
	"github.com/kilianp07/transitplan/config"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/pkg/export"
	"github.com/kilianp07/transitplan/pkg/ingest"
)

var planFlags struct {
	routes         string
	format         string
	output         string
	start          string
	end            string
	maxInterlining int
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan fleet and timetable for a route table",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planFlags.routes, "routes", "r", "", "route CSV file (defaults to input.routes_csv)")
	f.StringVarP(&planFlags.format, "format", "f", "json", "output format: json, yaml or csv")
	f.StringVarP(&planFlags.output, "output", "o", "", "output file (defaults to stdout)")
	f.StringVar(&planFlags.start, "start", "", "window start HH:MM")
	f.StringVar(&planFlags.end, "end", "", "window end HH:MM")
	f.IntVar(&planFlags.maxInterlining, "max-interlining", -1, "override planner.parameters.max_interlining")
	rootCmd.AddCommand(planCmd)
}

func readRoutes(path string) ([]model.Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ingest.ParseRoutes(f)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(planFlags.format)
	if err != nil {
		return err
	}
	return withService(cmd.Context(), func(cfg *config.Config, svc *app.Service) error {
		path := planFlags.routes
		if path == "" {
			path = cfg.Input.RoutesCSV
		}
		if path == "" {
			return fmt.Errorf("no route table: pass --routes or set input.routes_csv")
		}
		routes, err := readRoutes(path)
		if err != nil {
			return fmt.Errorf("read routes: %w", err)
		}

		req := app.Request{Routes: routes, Window: cfg.Planner.Window}
		if planFlags.start != "" {
			req.Window.Start = planFlags.start
		}
		if planFlags.end != "" {
			req.Window.End = planFlags.end
		}
		if planFlags.maxInterlining >= 0 {
			p := cfg.Planner.Parameters
			p.MaxInterlining = planFlags.maxInterlining
			req.Parameters = &p
		}

		out, err := svc.Planner.Plan(cmd.Context(), req)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if planFlags.output != "" {
			f, err := os.Create(planFlags.output)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if !out.Run.Plan.Feasible {
			for _, s := range out.Run.Plan.Shortfalls {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s needs %d vehicles, fleet has %d\n", s.Class, s.Required, s.Available)
			}
		}
		return export.Write(w, format, export.Report{
			RunID:    out.Run.ID,
			Results:  out.Run.Plan.Results,
			KPIs:     out.Run.Plan.KPIs,
			Schedule: out.Run.Schedule,
		})
	})
}
