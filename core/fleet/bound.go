package fleet

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// solveBound minimises costs·x subject to caps·x >= demand and x >= 0.
// A surplus variable turns the covering row into an equality.
func solveBound(costs, caps []float64, demand float64) (float64, error) {
	n := len(costs) + 1
	c := make([]float64, n)
	copy(c, costs)

	g := mat.NewDense(n, n, nil)
	h := make([]float64, n)
	for i := 0; i < n; i++ {
		g.Set(i, i, -1)
	}

	A := mat.NewDense(1, n, nil)
	for i, v := range caps {
		A.Set(0, i, v)
	}
	A.Set(0, n-1, -1)
	b := []float64{demand}

	cStd, AStd, bStd := lp.Convert(c, g, h, A, b)
	opt, _, err := lp.Simplex(cStd, AStd, bStd, 1e-9, nil)
	return opt, err
}

// boundSolve can be replaced in tests to simulate solver failures.
var boundSolve = solveBound

// RelaxedLowerBound solves the continuous relaxation of the mix problem for
// route. No integer mix can cost less than the returned value.
func RelaxedLowerBound(route model.Route, p model.Parameters) (float64, error) {
	demand := route.RequiredCapacity()
	if demand == 0 {
		return 0, nil
	}
	costs := make([]float64, len(model.Classes))
	caps := make([]float64, len(model.Classes))
	for i, c := range model.Classes {
		costs[i] = UnitCost(route, c, p)
		caps[i] = float64(p.Capacity(c))
	}
	opt, err := boundSolve(costs, caps, float64(demand))
	if err != nil {
		return 0, fmt.Errorf("lower bound for route %s: %w", route.RouteNo, err)
	}
	return opt, nil
}
