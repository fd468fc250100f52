// Package store persists planning runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/kilianp07/transitplan/core/fleet"
	"github.com/kilianp07/transitplan/core/model"
)

// ErrNotFound is returned when no run has the requested id.
var ErrNotFound = errors.New("run not found")

// Run is the persisted record of one planning request and its outcome.
type Run struct {
	ID         string               `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	Routes     []model.Route        `json:"routes"`
	Parameters model.Parameters     `json:"parameters"`
	Window     model.TimeRange      `json:"window"`
	Plan       fleet.Plan           `json:"plan"`
	Schedule   model.ScheduleResult `json:"schedule"`
}

// Summary is the listing view of a run.
type Summary struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Routes      int       `json:"routes"`
	Vehicles    int       `json:"vehicles"`
	Interlining int       `json:"interlining"`
	Cost        float64   `json:"cost"`
	Feasible    bool      `json:"feasible"`
}

// Summary condenses r.
func (r Run) Summary() Summary {
	return Summary{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Routes:      len(r.Routes),
		Vehicles:    r.Schedule.TotalVehicles,
		Interlining: r.Schedule.Interlining,
		Cost:        r.Schedule.Cost,
		Feasible:    r.Plan.Feasible,
	}
}

// RunStore saves and retrieves runs. Implementations are safe for concurrent use.
type RunStore interface {
	Save(ctx context.Context, r Run) error
	Get(ctx context.Context, id string) (Run, error)
	// List returns at most limit summaries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Summary, error)
	Close() error
}
