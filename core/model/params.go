package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameters is returned when cost or capacity parameters are unusable.
var ErrInvalidParameters = errors.New("invalid parameters")

// VehicleClass is one of the three vehicle sizes the planner can deploy.
type VehicleClass int

const (
	Minibus VehicleClass = iota
	Solo
	Articulated
	numClasses
)

// Classes lists the vehicle classes in enumeration and tie-break order.
var Classes = [...]VehicleClass{Minibus, Solo, Articulated}

// String returns the lowercase class name.
func (c VehicleClass) String() string {
	switch c {
	case Minibus:
		return "minibus"
	case Solo:
		return "solo"
	case Articulated:
		return "articulated"
	default:
		return "unknown"
	}
}

// IDPrefix prefixes vehicle identifiers of this class.
func (c VehicleClass) IDPrefix() string {
	switch c {
	case Minibus:
		return "Midi"
	case Solo:
		return "Solo"
	case Articulated:
		return "Artic"
	default:
		return "Veh"
	}
}

// ParseVehicleClass accepts the class name as produced by String, and "midi".
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minibus", "midi":
		return Minibus, nil
	case "solo":
		return Solo, nil
	case "articulated", "artic":
		return Articulated, nil
	}
	return 0, fmt.Errorf("unknown vehicle class %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c VehicleClass) MarshalText() ([]byte, error) {
	if c < 0 || c >= numClasses {
		return nil, fmt.Errorf("unknown vehicle class %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *VehicleClass) UnmarshalText(b []byte) error {
	v, err := ParseVehicleClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ClassSpec holds the capacity and per-km economics of a vehicle class.
type ClassSpec struct {
	Capacity         int     `json:"capacity" yaml:"capacity"`
	FuelCost         float64 `json:"fuel_cost" yaml:"fuel_cost"`
	MaintenanceCost  float64 `json:"maintenance_cost" yaml:"maintenance_cost"`
	DepreciationCost float64 `json:"depreciation_cost" yaml:"depreciation_cost"`
	CarbonEmission   float64 `json:"carbon_emission" yaml:"carbon_emission"`
	// FleetCount is the number of vehicles of this class the operator owns.
	FleetCount int `json:"fleet_count" yaml:"fleet_count"`
}

// OperatingCostPerKm is fuel + maintenance + depreciation.
func (s ClassSpec) OperatingCostPerKm() float64 {
	return s.FuelCost + s.MaintenanceCost + s.DepreciationCost
}

// Parameters are the global planning inputs.
type Parameters struct {
	Minibus         ClassSpec `json:"minibus" yaml:"minibus"`
	Solo            ClassSpec `json:"solo" yaml:"solo"`
	Articulated     ClassSpec `json:"articulated" yaml:"articulated"`
	DriverCostPerKm float64   `json:"driver_cost" yaml:"driver_cost"`
	MaxInterlining  int       `json:"max_interlining" yaml:"max_interlining"`
}

// DefaultParameters returns the planner defaults for a mid-sized operator.
func DefaultParameters() Parameters {
	return Parameters{
		Minibus:         ClassSpec{Capacity: 60, FuelCost: 0.8, MaintenanceCost: 0.2, DepreciationCost: 0.3, CarbonEmission: 0.6, FleetCount: 20},
		Solo:            ClassSpec{Capacity: 100, FuelCost: 1.2, MaintenanceCost: 0.3, DepreciationCost: 0.4, CarbonEmission: 0.9, FleetCount: 30},
		Articulated:     ClassSpec{Capacity: 150, FuelCost: 1.6, MaintenanceCost: 0.4, DepreciationCost: 0.5, CarbonEmission: 1.2, FleetCount: 10},
		DriverCostPerKm: 1.5,
		MaxInterlining:  0,
	}
}

// Spec returns the class specification for c.
func (p Parameters) Spec(c VehicleClass) ClassSpec {
	switch c {
	case Minibus:
		return p.Minibus
	case Articulated:
		return p.Articulated
	default:
		return p.Solo
	}
}

// Capacity is shorthand for p.Spec(c).Capacity.
func (p Parameters) Capacity(c VehicleClass) int { return p.Spec(c).Capacity }

// LargestClass returns the class with the highest configured capacity.
// Ties are resolved in favour of the later class in Classes.
func (p Parameters) LargestClass() VehicleClass {
	best := Classes[0]
	for _, c := range Classes[1:] {
		if p.Capacity(c) >= p.Capacity(best) {
			best = c
		}
	}
	return best
}

// Validate checks that every class can carry passengers and that costs are non-negative.
func (p Parameters) Validate() error {
	for _, c := range Classes {
		s := p.Spec(c)
		if s.Capacity <= 0 {
			return fmt.Errorf("%w: %s capacity must be positive", ErrInvalidParameters, c)
		}
		if s.FuelCost < 0 || s.MaintenanceCost < 0 || s.DepreciationCost < 0 || s.CarbonEmission < 0 {
			return fmt.Errorf("%w: %s costs must be non-negative", ErrInvalidParameters, c)
		}
		if s.FleetCount < 0 {
			return fmt.Errorf("%w: %s fleet count must be non-negative", ErrInvalidParameters, c)
		}
	}
	if p.DriverCostPerKm < 0 {
		return fmt.Errorf("%w: driver cost must be non-negative", ErrInvalidParameters)
	}
	if p.MaxInterlining < 0 {
		return fmt.Errorf("%w: max interlining must be non-negative", ErrInvalidParameters)
	}
	return nil
}
