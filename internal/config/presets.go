package config

import (
	"sort"

	"github.com/san-kum/submoonsim/internal/physics"
)

type Preset struct {
	Description string
	Params      physics.Params
}

var Presets = map[string]Preset{
	"default": {
		Description: "reference system, high stability",
		Params: physics.Params{
			PlanetMass: 28, MoonMass: 0.5, SubmoonMass: 0.05,
			PlanetOrbitRadius: 20, MoonOrbitRadius: 0.4, SubmoonOrbitRadius: 0.5,
		},
	},
	"optimal": {
		Description: "heavier submoon at the centre of the safe band",
		Params: physics.Params{
			PlanetMass: 25, MoonMass: 0.5, SubmoonMass: 0.08,
			PlanetOrbitRadius: 20, MoonOrbitRadius: 0.4, SubmoonOrbitRadius: 0.5,
		},
	},
	"balanced": {
		Description: "massive moon on a tight orbit",
		Params: physics.Params{
			PlanetMass: 30, MoonMass: 1, SubmoonMass: 0.1,
			PlanetOrbitRadius: 15, MoonOrbitRadius: 0.35, SubmoonOrbitRadius: 0.35,
		},
	},
	"marginal": {
		Description: "heavy submoon near the edge of the moon's Hill sphere",
		Params: physics.Params{
			PlanetMass: 45, MoonMass: 0.6, SubmoonMass: 0.15,
			PlanetOrbitRadius: 20, MoonOrbitRadius: 0.5, SubmoonOrbitRadius: 0.75,
		},
	},
	"unstable": {
		Description: "light moon, submoon outside its Hill sphere",
		Params: physics.Params{
			PlanetMass: 50, MoonMass: 0.2, SubmoonMass: 0.15,
			PlanetOrbitRadius: 20, MoonOrbitRadius: 0.5, SubmoonOrbitRadius: 1.2,
		},
	},
	"ganymede": {
		Description: "Jupiter-like planet with a Ganymede-scale moon",
		Params: physics.Params{
			PlanetMass: 1, MoonMass: 0.025, SubmoonMass: 0.003,
			PlanetOrbitRadius: 10, MoonOrbitRadius: 0.4, SubmoonOrbitRadius: 0.45,
		},
	},
}

// GetPreset returns a fresh config for a named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	cfg.System = p.Params
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
