package physics

import (
	"fmt"
	"math"
)

// Derived holds every quantity computed from a Params value.
type Derived struct {
	HillRadiusOfPlanet     float64 `json:"hill_radius_of_planet"`
	HillRadiusOfMoon       float64 `json:"hill_radius_of_moon"`
	RocheLimit             float64 `json:"roche_limit"`
	PlanetToMoonMassRatio  float64 `json:"planet_to_moon_mass_ratio"`
	MoonToSubmoonMassRatio float64 `json:"moon_to_submoon_mass_ratio"`
	MoonOrbitDistance      float64 `json:"moon_orbit_distance"`
	SubmoonOrbitDistance   float64 `json:"submoon_orbit_distance"`
	PlanetRadius           float64 `json:"planet_radius"`
	MoonWithinRoche        bool    `json:"moon_within_roche"`
}

// HillRadius returns orbitDistance × cbrt(secondaryMass / (3 × primaryMass)).
func HillRadius(primaryMass, secondaryMass, orbitDistance float64) (float64, error) {
	if err := RequirePositive("primary mass", primaryMass); err != nil {
		return 0, err
	}
	if err := RequirePositive("secondary mass", secondaryMass); err != nil {
		return 0, err
	}
	if err := RequirePositive("orbit distance", orbitDistance); err != nil {
		return 0, err
	}

	r := orbitDistance * math.Cbrt(secondaryMass/(3*primaryMass))
	if !finitePositive(r) {
		return 0, fmt.Errorf("%w: hill radius out of range (%g)", ErrInvalidParameter, r)
	}
	return r, nil
}

// RocheLimit returns primaryRadius × 2.44 × cbrt(primaryDensity / secondaryDensity).
func RocheLimit(primaryRadius, primaryDensity, secondaryDensity float64) (float64, error) {
	if err := RequirePositive("primary radius", primaryRadius); err != nil {
		return 0, err
	}
	if err := RequirePositive("primary density", primaryDensity); err != nil {
		return 0, err
	}
	if err := RequirePositive("secondary density", secondaryDensity); err != nil {
		return 0, err
	}

	d := primaryRadius * RocheCoefficient * math.Cbrt(primaryDensity/secondaryDensity)
	if !finitePositive(d) {
		return 0, fmt.Errorf("%w: roche limit out of range (%g)", ErrInvalidParameter, d)
	}
	return d, nil
}

// BodyRadius is the uniform-sphere radius of a body in display units.
func BodyRadius(mass, density float64) (float64, error) {
	if err := RequirePositive("mass", mass); err != nil {
		return 0, err
	}
	if err := RequirePositive("density", density); err != nil {
		return 0, err
	}
	return RadiusScale * math.Cbrt(3*mass/(4*math.Pi*density)), nil
}

// Derive computes all derived quantities for p.
func Derive(p Params) (Derived, error) {
	if err := p.Validate(); err != nil {
		return Derived{}, err
	}

	hillPlanet, err := HillRadius(StarMass, p.PlanetMass, p.PlanetOrbitRadius)
	if err != nil {
		return Derived{}, fmt.Errorf("planet hill radius: %w", err)
	}
	moonDistance := p.MoonOrbitRadius * hillPlanet

	hillMoon, err := HillRadius(p.PlanetMass, p.MoonMass, moonDistance)
	if err != nil {
		return Derived{}, fmt.Errorf("moon hill radius: %w", err)
	}

	planetRadius, err := BodyRadius(p.PlanetMass, PlanetDensity)
	if err != nil {
		return Derived{}, fmt.Errorf("planet radius: %w", err)
	}
	roche, err := RocheLimit(planetRadius, PlanetDensity, MoonDensity)
	if err != nil {
		return Derived{}, fmt.Errorf("roche limit: %w", err)
	}

	planetToMoon := p.PlanetMass / p.MoonMass
	moonToSubmoon := p.MoonMass / p.SubmoonMass
	if !finitePositive(planetToMoon) || !finitePositive(moonToSubmoon) {
		return Derived{}, fmt.Errorf("%w: mass ratio out of range", ErrInvalidParameter)
	}

	return Derived{
		HillRadiusOfPlanet:     hillPlanet,
		HillRadiusOfMoon:       hillMoon,
		RocheLimit:             roche,
		PlanetToMoonMassRatio:  planetToMoon,
		MoonToSubmoonMassRatio: moonToSubmoon,
		MoonOrbitDistance:      moonDistance,
		SubmoonOrbitDistance:   p.SubmoonOrbitRadius * hillMoon,
		PlanetRadius:           planetRadius,
		MoonWithinRoche:        moonDistance < roche,
	}, nil
}
