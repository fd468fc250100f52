package config

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/model"
)

const (
	defaultWindowStart = "07:00"
	defaultWindowEnd   = "08:00"
)

// PlannerConfig holds the engine parameters and the planning window.
type PlannerConfig struct {
	Parameters model.Parameters `json:"parameters"`
	Window     model.TimeRange  `json:"window"`
}

// SetDefaults restores default parameters when none were given and fills a
// class left entirely unset with its default spec.
func (c *PlannerConfig) SetDefaults() {
	def := model.DefaultParameters()
	p := &c.Parameters
	if *p == (model.Parameters{}) {
		*p = def
	}
	if p.Minibus == (model.ClassSpec{}) {
		p.Minibus = def.Minibus
	}
	if p.Solo == (model.ClassSpec{}) {
		p.Solo = def.Solo
	}
	if p.Articulated == (model.ClassSpec{}) {
		p.Articulated = def.Articulated
	}
	if c.Window.Start == "" {
		c.Window.Start = defaultWindowStart
	}
	if c.Window.End == "" {
		c.Window.End = defaultWindowEnd
	}
}

// Validate checks the parameters and the window.
func (c PlannerConfig) Validate() error {
	if err := c.Parameters.Validate(); err != nil {
		return err
	}
	if _, err := c.Window.Window(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// InputConfig points at the default route table.
type InputConfig struct {
	RoutesCSV string `json:"routes_csv"`
}
