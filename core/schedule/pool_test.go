package schedule

import (
	"testing"

	"github.com/kilianp07/transitplan/core/model"
	"github.com/stretchr/testify/assert"
)

func TestRouteSet(t *testing.T) {
	var s RouteSet
	assert.True(t, s.Within("1"))
	assert.True(t, s.Add("1"))
	assert.False(t, s.Add("1"))
	assert.True(t, s.Within("1"))
	s.Add("2")
	assert.False(t, s.Within("1"))
	assert.Equal(t, []string{"1", "2"}, s.Slice())
}

func TestIDAllocatorPerClass(t *testing.T) {
	var a IDAllocator
	assert.Equal(t, "Solo-1", a.Next(model.Solo))
	assert.Equal(t, "Midi-1", a.Next(model.Minibus))
	assert.Equal(t, "Solo-2", a.Next(model.Solo))
	assert.Equal(t, "Artic-1", a.Next(model.Articulated))
}

func TestPoolSeedAlternatesEndpoints(t *testing.T) {
	p := testParams()
	mix := model.NewMix(1, 3, 1)
	comps := map[string]model.Composition{"1": {RouteNo: "1", Mix: mix, Capacity: mix.Capacity(p)}}
	pool := NewPool()
	pool.Seed([]model.Route{exampleRoute()}, comps, 360)

	vs := pool.Vehicles()
	if len(vs) != 5 {
		t.Fatalf("expected 5 vehicles got %d", len(vs))
	}
	got := make([]string, len(vs))
	for i, v := range vs {
		got[i] = v.ID + "@" + v.Location.String()
		assert.Equal(t, 360, v.AvailableAt)
		assert.True(t, v.Routes.Has("1"))
	}
	assert.Equal(t, []string{"Midi-1@A", "Solo-1@A", "Solo-2@B", "Solo-3@A", "Artic-1@A"}, got)
}

func TestVehicleAssign(t *testing.T) {
	pool := NewPool()
	v := pool.Spawn(model.Solo, model.EndpointB, 360, "")
	trip := &Trip{RouteNo: "1", Direction: model.BtoA, Departure: 370}
	v.Assign(trip, exampleRoute())

	assert.Equal(t, model.EndpointA, v.Location)
	assert.Equal(t, 370+28, v.AvailableAt)
	assert.Equal(t, 1, v.Trips)
	assert.Equal(t, "1", v.CurrentRoute)
	assert.Equal(t, v.ID, trip.VehicleID)
	assert.Equal(t, model.Solo, trip.Class)

	ft, ok := v.FirstTripOn("1")
	assert.True(t, ok)
	assert.Equal(t, FirstTrip{Direction: model.BtoA, Origin: model.EndpointB, Departure: 370}, ft)
}
