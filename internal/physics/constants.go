package physics

const (
	// StarMass is the stellar mass proxy in Jupiter masses (the Sun is ~1047).
	StarMass = 1000.0

	PlanetDensity  = 1.33 // g/cm³, Jupiter
	MoonDensity    = 1.94 // g/cm³, Ganymede
	SubmoonDensity = 3.0  // g/cm³, rocky

	// RadiusScale maps the uniform-sphere radius cbrt(3m/4πρ) into display
	// distance units.
	RadiusScale = 0.05

	// RocheCoefficient is the fluid-body Roche coefficient.
	RocheCoefficient = 2.44

	// PeriodScale calibrates sqrt(a³/M) for visual pacing only.
	PeriodScale = 1.0

	PlanetDamping  = 1000.0
	MoonDamping    = 1500.0
	SubmoonDamping = 4000.0

	// MinOrbitScale is the smallest axis, mass or period treated as non-degenerate.
	MinOrbitScale = 1e-9
)
