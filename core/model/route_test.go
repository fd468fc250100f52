package model

import (
	"errors"
	"testing"
)

func TestRouteValidate(t *testing.T) {
	ok := Route{RouteNo: "12", LengthAtoB: 10, LengthBtoA: 11, TravelTimeAtoB: 30, TravelTimeBtoA: 32, PeakAtoB: 200, PeakBtoA: 150}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Route{
		{LengthAtoB: 1, TravelTimeAtoB: 1, TravelTimeBtoA: 1},
		{RouteNo: "1", LengthAtoB: -1, TravelTimeAtoB: 1, TravelTimeBtoA: 1},
		{RouteNo: "1", TravelTimeAtoB: 0, TravelTimeBtoA: 1},
		{RouteNo: "1", TravelTimeAtoB: 1, TravelTimeBtoA: 1, PeakBtoA: -5},
	}
	for i, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRoute) {
			t.Fatalf("case %d: expected ErrInvalidRoute got %v", i, err)
		}
	}
}

func TestValidateRoutesDuplicate(t *testing.T) {
	r := Route{RouteNo: "7", TravelTimeAtoB: 10, TravelTimeBtoA: 10}
	if err := ValidateRoutes([]Route{r, r}); !errors.Is(err, ErrInvalidRoute) {
		t.Fatalf("expected duplicate to fail, got %v", err)
	}
}

func TestDirectionEndpoints(t *testing.T) {
	if AtoB.Origin() != EndpointA || AtoB.Destination() != EndpointB {
		t.Fatalf("AtoB endpoints wrong")
	}
	if BtoA.Origin() != EndpointB || BtoA.Destination() != EndpointA {
		t.Fatalf("BtoA endpoints wrong")
	}
}

func TestRouteRequiredCapacity(t *testing.T) {
	r := Route{PeakAtoB: 120, PeakBtoA: 340}
	if r.RequiredCapacity() != 340 {
		t.Fatalf("expected 340 got %d", r.RequiredCapacity())
	}
}

func TestParametersValidate(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	p.Solo.Capacity = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters got %v", err)
	}
	p = DefaultParameters()
	p.MaxInterlining = -1
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters got %v", err)
	}
}

func TestVehicleClassText(t *testing.T) {
	for _, c := range Classes {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", c, err)
		}
		var got VehicleClass
		if err := got.UnmarshalText(b); err != nil || got != c {
			t.Fatalf("round trip %s: got %v err %v", b, got, err)
		}
	}
	if _, err := ParseVehicleClass("tram"); err == nil {
		t.Fatalf("expected error for unknown class")
	}
}

func TestMixCapacity(t *testing.T) {
	p := DefaultParameters()
	m := NewMix(1, 2, 1)
	if m.Total() != 4 {
		t.Fatalf("expected 4 vehicles got %d", m.Total())
	}
	if got := m.Capacity(p); got != 60+200+150 {
		t.Fatalf("unexpected capacity %d", got)
	}
}
