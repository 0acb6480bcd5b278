package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter indicates a non-positive or non-finite mass, radius or density.
	ErrInvalidParameter = errors.New("physics: invalid parameter")

	// ErrDegenerateOrbit indicates a zero or near-zero axis, mass or period.
	ErrDegenerateOrbit = errors.New("physics: degenerate orbit")
)

// Params are the user-chosen inputs of the hierarchy.
type Params struct {
	PlanetMass         float64 `yaml:"planet_mass" json:"planet_mass"`
	MoonMass           float64 `yaml:"moon_mass" json:"moon_mass"`
	SubmoonMass        float64 `yaml:"submoon_mass" json:"submoon_mass"`
	PlanetOrbitRadius  float64 `yaml:"planet_orbit_radius" json:"planet_orbit_radius"`
	MoonOrbitRadius    float64 `yaml:"moon_orbit_radius" json:"moon_orbit_radius"`
	SubmoonOrbitRadius float64 `yaml:"submoon_orbit_radius" json:"submoon_orbit_radius"`
}

// Field is a named parameter value.
type Field struct {
	Name  string
	Value float64
}

// Fields lists the parameters in a fixed order, keyed by their yaml names.
func (p Params) Fields() []Field {
	return []Field{
		{"planet_mass", p.PlanetMass},
		{"moon_mass", p.MoonMass},
		{"submoon_mass", p.SubmoonMass},
		{"planet_orbit_radius", p.PlanetOrbitRadius},
		{"moon_orbit_radius", p.MoonOrbitRadius},
		{"submoon_orbit_radius", p.SubmoonOrbitRadius},
	}
}

// Get returns the parameter with the given yaml name.
func (p Params) Get(name string) (float64, error) {
	for _, f := range p.Fields() {
		if f.Name == name {
			return f.Value, nil
		}
	}
	return 0, fmt.Errorf("unknown param: %s", name)
}

// With returns a copy of p with one parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case "planet_mass":
		p.PlanetMass = value
	case "moon_mass":
		p.MoonMass = value
	case "submoon_mass":
		p.SubmoonMass = value
	case "planet_orbit_radius":
		p.PlanetOrbitRadius = value
	case "moon_orbit_radius":
		p.MoonOrbitRadius = value
	case "submoon_orbit_radius":
		p.SubmoonOrbitRadius = value
	default:
		return p, fmt.Errorf("unknown param: %s", name)
	}
	return p, nil
}

// Validate reports the first parameter that is not positive and finite.
func (p Params) Validate() error {
	for _, f := range p.Fields() {
		if err := RequirePositive(f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// RequirePositive fails with ErrInvalidParameter unless v is finite and > 0.
func RequirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidParameter, name, v)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
