package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transitplan/app"
	"github.com/kilianp07/transitplan/config"
	"github.com/kilianp07/transitplan/infra/logger"
	_ "github.com/kilianp07/transitplan/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "transitplan",
	Short:        "Transit fleet and timetable planner",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	return cfg, nil
}

// withService loads the configuration, builds the service and closes it after fn.
func withService(ctx context.Context, fn func(*config.Config, *app.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(cfg, svc)
}
