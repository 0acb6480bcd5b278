// Package stability scores a planet/moon/submoon configuration with a
// heuristic built from mass ratios and the submoon's orbital position.
//
// The score is static: it classifies a configuration, it does not evolve it.
package stability

import "github.com/san-kum/submoonsim/internal/physics"

// Critical parameter messages, in check order.
const (
	MsgPlanetMoonRatio  = "Planet/Moon mass ratio too high"
	MsgMoonSubmoonRatio = "Moon/Submoon mass ratio too low"
	MsgSubmoonPosition  = "Submoon orbital position suboptimal"
)

const (
	MaxMassRatioScore = 70
	MaxOrbitalScore   = 30
	MaxScore          = MaxMassRatioScore + MaxOrbitalScore
)

// Stats is the verdict for one configuration.
type Stats struct {
	Score              int      `json:"score"`
	Tier               Tier     `json:"tier"`
	Lifetime           Lifetime `json:"lifetime"`
	Tidal              Tidal    `json:"tidal"`
	CriticalParameters []string `json:"critical_parameters"`

	PlanetToMoonMassRatio  float64 `json:"planet_to_moon_mass_ratio"`
	MoonToSubmoonMassRatio float64 `json:"moon_to_submoon_mass_ratio"`
	OrbitRatio             float64 `json:"orbit_ratio"`
}

// Clone returns a copy that shares no slice with s.
func (s Stats) Clone() Stats {
	s.CriticalParameters = append([]string(nil), s.CriticalParameters...)
	return s
}

// Score computes the stability verdict. Mass ratios are taken from d when
// present and recomputed from p otherwise.
func Score(p physics.Params, d physics.Derived) Stats {
	planetToMoon := d.PlanetToMoonMassRatio
	if !(planetToMoon > 0) {
		planetToMoon = p.PlanetMass / p.MoonMass
	}
	moonToSubmoon := d.MoonToSubmoonMassRatio
	if !(moonToSubmoon > 0) {
		moonToSubmoon = p.MoonMass / p.SubmoonMass
	}

	score := MassRatioScore(planetToMoon, moonToSubmoon) + OrbitalScore(p.SubmoonOrbitRadius)
	tier, lifetime, tidal := Classify(score)

	orbitRatio := 0.0
	if p.PlanetOrbitRadius > 0 {
		orbitRatio = d.MoonOrbitDistance / p.PlanetOrbitRadius
	}

	return Stats{
		Score:                  score,
		Tier:                   tier,
		Lifetime:               lifetime,
		Tidal:                  tidal,
		CriticalParameters:     Critical(planetToMoon, moonToSubmoon, p.SubmoonOrbitRadius),
		PlanetToMoonMassRatio:  planetToMoon,
		MoonToSubmoonMassRatio: moonToSubmoon,
		OrbitRatio:             orbitRatio,
	}
}

// MassRatioScore is the mass-ratio sub-score, at most 70.
func MassRatioScore(planetToMoon, moonToSubmoon float64) int {
	score := 0
	switch {
	case planetToMoon < 40:
		score += 30
	case planetToMoon < 60:
		score += 20
	case planetToMoon < 80:
		score += 10
	}
	switch {
	case moonToSubmoon > 8:
		score += 40
	case moonToSubmoon > 5:
		score += 30
	case moonToSubmoon > 3:
		score += 15
	}
	return score
}

// OrbitalScore is the orbital-position sub-score, at most 30. The bands are
// closed intervals of the submoon radius in moon Hill radii.
func OrbitalScore(submoonOrbitRadius float64) int {
	r := submoonOrbitRadius
	switch {
	case r >= 0.4 && r <= 0.6:
		return 30
	case r >= 0.3 && r <= 0.7:
		return 20
	case r >= 0.2 && r <= 0.8:
		return 10
	}
	return 0
}

// Classify maps a score to its tier, lifetime and tidal class. Thresholds
// are inclusive lower bounds checked from the top.
func Classify(score int) (Tier, Lifetime, Tidal) {
	switch {
	case score >= 80:
		return TierHigh, LifetimeOver100My, TidalWeak
	case score >= 50:
		return TierMedium, Lifetime50To100My, TidalModerate
	case score >= 30:
		return TierLow, Lifetime10To50My, TidalStrong
	default:
		return TierVeryLow, LifetimeUnder10My, TidalExtreme
	}
}

// Critical lists the violated criteria. Each check is independent.
func Critical(planetToMoon, moonToSubmoon, submoonOrbitRadius float64) []string {
	critical := make([]string, 0, 3)
	if planetToMoon > 60 {
		critical = append(critical, MsgPlanetMoonRatio)
	}
	if moonToSubmoon < 5 {
		critical = append(critical, MsgMoonSubmoonRatio)
	}
	if submoonOrbitRadius < 0.3 || submoonOrbitRadius > 0.7 {
		critical = append(critical, MsgSubmoonPosition)
	}
	return critical
}
