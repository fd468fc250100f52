package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/infra/store"
)

func newCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), Config{URL: "redis://" + mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	run := store.Run{ID: "run-1", Schedule: model.ScheduleResult{TotalVehicles: 3, Cost: 12.5}}
	require.NoError(t, c.Set(ctx, "k", run))
	assert.True(t, mr.Exists(defaultPrefix+"k"))
	assert.Equal(t, time.Minute, mr.TTL(defaultPrefix+"k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, 12.5, got.Schedule.Cost)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set(defaultPrefix+"bad", "{"))
	_, _, err := c.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestNewRedisCacheErrors(t *testing.T) {
	_, err := NewRedisCache(context.Background(), Config{URL: "://nope"})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisCache(context.Background(), Config{URL: "redis://" + addr})
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	routes := []model.Route{{RouteNo: "1", TravelTimeAtoB: 30, TravelTimeBtoA: 28, PeakAtoB: 200}}
	w := model.TimeRange{Start: "06:00", End: "09:00"}
	a, err := Fingerprint(routes, model.DefaultParameters(), w)
	require.NoError(t, err)
	b, err := Fingerprint(routes, model.DefaultParameters(), w)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	p := model.DefaultParameters()
	p.MaxInterlining = 2
	c, err := Fingerprint(routes, p, w)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	require.NoError(t, c.Set(context.Background(), "k", store.Run{}))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
