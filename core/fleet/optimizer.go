package fleet

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/transitplan/core/logger"
	"github.com/kilianp07/transitplan/core/model"
)

// Slack is added to every per-class bound so mixes slightly above the
// single-class minimum are still explored.
const Slack = 2

// costTolerance is the band within which two costs are considered equal.
const costTolerance = 0.01

// ErrInfeasible indicates that no mix within the bounds covers the route demand.
var ErrInfeasible = errors.New("fleet: no feasible composition")

// Candidate is one evaluated mix.
type Candidate struct {
	Mix         model.Mix
	Cost        float64
	Utilization float64
}

// Better reports whether a should replace the incumbent b. Lower cost wins;
// costs within a cent tie and the higher utilization wins. A full tie keeps b.
func Better(a, b Candidate) bool {
	if math.Abs(a.Cost-b.Cost) < costTolerance {
		return a.Utilization > b.Utilization
	}
	return a.Cost < b.Cost
}

// Bounds returns the largest count explored per class.
func Bounds(required int, p model.Parameters) model.Mix {
	var b model.Mix
	for _, c := range model.Classes {
		capacity := p.Capacity(c)
		b[c] = (required+capacity-1)/capacity + Slack
	}
	return b
}

// Optimizer chooses a vehicle mix per route.
type Optimizer struct {
	Params model.Parameters
	Logger logger.Logger
}

// NewOptimizer validates p and returns an Optimizer.
func NewOptimizer(p model.Parameters, log logger.Logger) (*Optimizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{Params: p, Logger: logger.OrNop(log)}, nil
}

// Optimize enumerates every mix within Bounds and returns the cheapest one
// whose capacity covers the busier direction of route.
func (o *Optimizer) Optimize(route model.Route) (model.Composition, error) {
	return Optimize(route, o.Params)
}

// Optimize is the stateless form of Optimizer.Optimize.
func Optimize(route model.Route, p model.Parameters) (model.Composition, error) {
	required := route.RequiredCapacity()
	if required == 0 {
		return model.Composition{RouteNo: route.RouteNo}, nil
	}

	bounds := Bounds(required, p)
	var best *Candidate
	for m := 0; m <= bounds[model.Minibus]; m++ {
		for s := 0; s <= bounds[model.Solo]; s++ {
			for a := 0; a <= bounds[model.Articulated]; a++ {
				mix := model.NewMix(m, s, a)
				capacity := mix.Capacity(p)
				if capacity < required {
					continue
				}
				cand := Candidate{
					Mix:         mix,
					Cost:        CostOf(route, mix, p).Total,
					Utilization: Utilization(required, capacity),
				}
				if best == nil || Better(cand, *best) {
					c := cand
					best = &c
				}
			}
		}
	}
	if best == nil {
		return model.Composition{}, fmt.Errorf("%w for route %s", ErrInfeasible, route.RouteNo)
	}
	return model.Composition{
		RouteNo:    route.RouteNo,
		Mix:        best.Mix,
		Capacity:   best.Mix.Capacity(p),
		Cost:       CostOf(route, best.Mix, p),
		CO2:        CO2Of(route, best.Mix, p),
		LoadFactor: best.Utilization,
	}, nil
}
