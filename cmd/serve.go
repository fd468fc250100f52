package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transitplan/api/plans"
	"github.com/kilianp07/transitplan/app"
	"github.com/kilianp07/transitplan/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plans HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to http.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withService(ctx, func(cfg *config.Config, svc *app.Service) error {
		addr := cfg.HTTP.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		h := plans.NewHandler(svc.Planner, plans.NewLimiter(cfg.HTTP.RateLimit, cfg.HTTP.Burst))
		return svc.Serve(ctx, addr, h)
	})
}
