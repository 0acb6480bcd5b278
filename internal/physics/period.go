package physics

import (
	"fmt"
	"math"
)

// Level identifies one of the three nested orbits.
type Level int

const (
	LevelPlanet Level = iota
	LevelMoon
	LevelSubmoon
)

// NumLevels is the number of nested orbits.
const NumLevels = 3

func (l Level) String() string {
	switch l {
	case LevelPlanet:
		return "planet"
	case LevelMoon:
		return "moon"
	case LevelSubmoon:
		return "submoon"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Damping returns the visual damping constant of an orbit level.
func (l Level) Damping() float64 {
	switch l {
	case LevelPlanet:
		return PlanetDamping
	case LevelMoon:
		return MoonDamping
	default:
		return SubmoonDamping
	}
}

// OrbitalPeriod returns PeriodScale × sqrt(a³ / M).
func OrbitalPeriod(semiMajorAxis, centralMass float64) (float64, error) {
	if degenerate(semiMajorAxis) || degenerate(centralMass) {
		return 0, fmt.Errorf("%w: axis %g, central mass %g", ErrDegenerateOrbit, semiMajorAxis, centralMass)
	}
	a := semiMajorAxis
	period := PeriodScale * math.Sqrt(a*a*a/centralMass)
	if degenerate(period) {
		return 0, fmt.Errorf("%w: period %g", ErrDegenerateOrbit, period)
	}
	return period, nil
}

// AngularSpeed returns 2π / (period × damping) in radians per tick.
func AngularSpeed(period, damping float64) (float64, error) {
	if degenerate(period) || degenerate(damping) {
		return 0, fmt.Errorf("%w: period %g, damping %g", ErrDegenerateOrbit, period, damping)
	}
	w := 2 * math.Pi / (period * damping)
	if !finitePositive(w) {
		return 0, fmt.Errorf("%w: angular speed %g", ErrDegenerateOrbit, w)
	}
	return w, nil
}

// Speeds are the angular speeds of the three orbits. A frozen orbit has a
// degenerate period and keeps its angle.
type Speeds struct {
	Omega  [NumLevels]float64 `json:"omega"`
	Frozen [NumLevels]bool    `json:"frozen"`
}

// AnyFrozen reports whether at least one orbit is frozen.
func (s Speeds) AnyFrozen() bool {
	for _, f := range s.Frozen {
		if f {
			return true
		}
	}
	return false
}

// OrbitSpeeds computes the angular speed of each orbit level. Degenerate
// orbits are frozen rather than reported as errors.
func OrbitSpeeds(p Params, d Derived) Speeds {
	orbits := [NumLevels]struct{ axis, mass float64 }{
		LevelPlanet:  {p.PlanetOrbitRadius, StarMass},
		LevelMoon:    {d.MoonOrbitDistance, p.PlanetMass},
		LevelSubmoon: {d.SubmoonOrbitDistance, p.MoonMass},
	}

	var s Speeds
	for i, o := range orbits {
		period, err := OrbitalPeriod(o.axis, o.mass)
		if err == nil {
			s.Omega[i], err = AngularSpeed(period, Level(i).Damping())
		}
		if err != nil {
			s.Omega[i] = 0
			s.Frozen[i] = true
		}
	}
	return s
}

func degenerate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < MinOrbitScale
}
