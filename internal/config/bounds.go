package config

import (
	"math"

	"github.com/san-kum/submoonsim/internal/physics"
)

// Bound is the interactive tuning range of one parameter.
type Bound struct {
	Min  float64
	Max  float64
	Step float64
}

// SpeedKey names the speed multiplier in Bounds.
const SpeedKey = "speed"

var Bounds = map[string]Bound{
	"planet_mass":          {Min: 1, Max: 100, Step: 1},
	"moon_mass":            {Min: 0.1, Max: 10, Step: 0.1},
	"submoon_mass":         {Min: 0.01, Max: 1, Step: 0.01},
	"planet_orbit_radius":  {Min: 10, Max: 30, Step: 1},
	"moon_orbit_radius":    {Min: 0.1, Max: 1, Step: 0.05},
	"submoon_orbit_radius": {Min: 0.1, Max: 1.5, Step: 0.05},
	SpeedKey:               {Min: 0, Max: 5, Step: 0.1},
}

// ParamKeys lists the tunable system parameters in display order.
func ParamKeys() []string {
	fields := physics.Params{}.Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Name
	}
	return keys
}

// Clamp limits v to the bound of name. Unknown names pass through.
func Clamp(name string, v float64) float64 {
	b, ok := Bounds[name]
	if !ok {
		return v
	}
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Nudge moves v by steps increments of the bound's step and clamps the
// result, rounding away float drift.
func Nudge(name string, v float64, steps int) float64 {
	b, ok := Bounds[name]
	if !ok || b.Step <= 0 {
		return v
	}
	n := math.Round((v+float64(steps)*b.Step)/b.Step) * b.Step
	return Clamp(name, math.Round(n*1e6)/1e6)
}
