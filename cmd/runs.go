package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transitplan/app"
	"github.com/kilianp07/transitplan/config"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Stored planning runs",
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored runs, newest first",
	RunE:  runRunsLs,
}

func init() {
	runsLsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
	runsCmd.AddCommand(runsLsCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsLs(cmd *cobra.Command, _ []string) error {
	return withService(cmd.Context(), func(_ *config.Config, svc *app.Service) error {
		runs, err := svc.Planner.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tROUTES\tVEHICLES\tINTERLINING\tCOST\tFEASIBLE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\t%t\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Routes, r.Vehicles, r.Interlining, r.Cost, r.Feasible)
		}
		return tw.Flush()
	})
}
