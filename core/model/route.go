package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRoute is returned when a route fails validation.
var ErrInvalidRoute = errors.New("invalid route")

// Endpoint names one terminus of a route.
type Endpoint byte

const (
	EndpointA Endpoint = 'A'
	EndpointB Endpoint = 'B'
)

func (e Endpoint) String() string { return string(rune(e)) }

// Direction identifies which way a trip runs along a route.
type Direction int

const (
	AtoB Direction = iota
	BtoA
)

// Directions lists both directions in generation order.
var Directions = [...]Direction{AtoB, BtoA}

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case AtoB:
		return "AtoB"
	case BtoA:
		return "BtoA"
	default:
		return "unknown"
	}
}

// Origin returns the endpoint a trip in this direction departs from.
func (d Direction) Origin() Endpoint {
	if d == BtoA {
		return EndpointB
	}
	return EndpointA
}

// Destination returns the endpoint a trip in this direction arrives at.
func (d Direction) Destination() Endpoint {
	if d == BtoA {
		return EndpointA
	}
	return EndpointB
}

// Route is a bidirectional line between endpoints A and B.
type Route struct {
	RouteNo        string  `json:"route_no" yaml:"route_no"`
	RouteName      string  `json:"route_name" yaml:"route_name"`
	LengthAtoB     float64 `json:"length_a_to_b" yaml:"length_a_to_b"`
	LengthBtoA     float64 `json:"length_b_to_a" yaml:"length_b_to_a"`
	TravelTimeAtoB int     `json:"travel_time_a_to_b" yaml:"travel_time_a_to_b"`
	TravelTimeBtoA int     `json:"travel_time_b_to_a" yaml:"travel_time_b_to_a"`
	PeakAtoB       int     `json:"peak_a_to_b" yaml:"peak_a_to_b"`
	PeakBtoA       int     `json:"peak_b_to_a" yaml:"peak_b_to_a"`
}

// Validate checks that the route can be planned.
func (r Route) Validate() error {
	switch {
	case r.RouteNo == "":
		return fmt.Errorf("%w: empty route number", ErrInvalidRoute)
	case r.LengthAtoB < 0 || r.LengthBtoA < 0:
		return fmt.Errorf("%w: route %s has a negative length", ErrInvalidRoute, r.RouteNo)
	case r.TravelTimeAtoB <= 0 || r.TravelTimeBtoA <= 0:
		return fmt.Errorf("%w: route %s needs positive travel times", ErrInvalidRoute, r.RouteNo)
	case r.PeakAtoB < 0 || r.PeakBtoA < 0:
		return fmt.Errorf("%w: route %s has a negative peak", ErrInvalidRoute, r.RouteNo)
	}
	return nil
}

// ValidateRoutes validates every route and rejects duplicate route numbers.
func ValidateRoutes(routes []Route) error {
	seen := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.RouteNo]; dup {
			return fmt.Errorf("%w: duplicate route number %s", ErrInvalidRoute, r.RouteNo)
		}
		seen[r.RouteNo] = struct{}{}
	}
	return nil
}

// Length returns the route length in km for the direction.
func (r Route) Length(d Direction) float64 {
	if d == BtoA {
		return r.LengthBtoA
	}
	return r.LengthAtoB
}

// TravelTime returns the travel time in minutes for the direction.
func (r Route) TravelTime(d Direction) int {
	if d == BtoA {
		return r.TravelTimeBtoA
	}
	return r.TravelTimeAtoB
}

// Peak returns the peak passenger demand for the direction.
func (r Route) Peak(d Direction) int {
	if d == BtoA {
		return r.PeakBtoA
	}
	return r.PeakAtoB
}

// RequiredCapacity is the capacity a fleet needs to cover the busier direction.
func (r Route) RequiredCapacity() int {
	return max(r.PeakAtoB, r.PeakBtoA)
}

// RoundTripLength is the distance of one A→B→A cycle.
func (r Route) RoundTripLength() float64 {
	return r.LengthAtoB + r.LengthBtoA
}
