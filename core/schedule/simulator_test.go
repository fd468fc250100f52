package schedule

import (
	"testing"

	"github.com/kilianp07/transitplan/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorExampleAssignments(t *testing.T) {
	p := testParams()
	w := morningPeak(t)
	routes := []model.Route{exampleRoute()}
	comps := map[string]model.Composition{"1": solo("1", 2, p)}

	pool := NewPool()
	pool.Seed(routes, comps, w.Start)
	trips := MergeTrips(routes, comps, w)
	sim := NewSimulator(pool, routes, nil, 0, nil)
	sim.Run(trips)

	require.Len(t, trips, 2)
	assert.Equal(t, "Solo-1", trips[0].VehicleID)
	assert.Equal(t, "Solo-2", trips[1].VehicleID)
	assert.Equal(t, map[string]int{TierFirstFit: 2}, sim.Hits())

	v, _ := pool.Get("Solo-1")
	assert.Equal(t, model.EndpointB, v.Location)
	assert.Equal(t, 390, v.AvailableAt)
}

// One solo serves an outbound trip, so the first inbound trip waits for it
// and is pushed past the window end.
func pushedRoute() (model.Route, model.Window) {
	r := model.Route{RouteNo: "P", LengthAtoB: 5, LengthBtoA: 5, TravelTimeAtoB: 100, TravelTimeBtoA: 100, PeakAtoB: 100, PeakBtoA: 200}
	return r, model.Window{Start: 360, End: 420}
}

func TestSimulatorTierLadder(t *testing.T) {
	p := testParams()
	r, w := pushedRoute()
	routes := []model.Route{r}
	comps := map[string]model.Composition{"P": solo("P", 1, p)}

	pool := NewPool()
	pool.Seed(routes, comps, w.Start)
	trips := MergeTrips(routes, comps, w)
	sim := NewSimulator(pool, routes, nil, 0, nil)
	sim.Run(trips)

	require.Len(t, trips, 3)
	assert.Equal(t, map[string]int{TierFirstFit: 1, TierEarliestAvailable: 1, TierLeastUsed: 1}, sim.Hits())
	deps := []int{trips[0].Departure, trips[1].Departure, trips[2].Departure}
	assert.Equal(t, []int{360, 460, 390}, deps)

	kept := retainTrips(trips, w)
	assert.Len(t, kept, 2)
	reconcileTripCounts(pool, kept)
	v, _ := pool.Get("Solo-1")
	assert.Equal(t, 2, v.Trips)
}

func TestSimulatorSpawnsWhenPoolEmpty(t *testing.T) {
	w := morningPeak(t)
	routes := []model.Route{exampleRoute()}
	pool := NewPool()
	trips := MergeTrips(routes, nil, w)
	sim := NewSimulator(pool, routes, nil, 0, nil)
	sim.Run(trips)

	for _, tr := range trips {
		assert.True(t, tr.Assigned())
	}
	assert.Equal(t, 1, sim.Hits()[TierSpawn])
	assert.Equal(t, "Midi-1", trips[0].VehicleID)
}

func TestSimulatorCustomTiersLeaveTripsUnassigned(t *testing.T) {
	w := morningPeak(t)
	routes := []model.Route{exampleRoute()}
	pool := NewPool()
	trips := MergeTrips(routes, nil, w)
	sim := NewSimulator(pool, routes, []Tier{{Name: TierFirstFit, Match: firstFit}}, 0, nil)
	sim.Run(trips)

	assert.Empty(t, retainTrips(trips, w))
}
