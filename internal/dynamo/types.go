package dynamo

import (
	"math"

	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
)

const twoPi = 2 * math.Pi

// Vec3 is a point in scene space. Orbits lie in the X–Z plane, so Y stays 0.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

func (v Vec3) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// orbitPoint places a body at distance r from parent along phase angle theta.
func orbitPoint(parent Vec3, r, theta float64) Vec3 {
	return Vec3{
		X: parent.X + r*math.Cos(theta),
		Y: parent.Y,
		Z: parent.Z + r*math.Sin(theta),
	}
}

// Positions are the absolute positions of the three orbiting bodies. The
// star sits at the origin.
type Positions struct {
	Planet  Vec3 `json:"planet"`
	Moon    Vec3 `json:"moon"`
	Submoon Vec3 `json:"submoon"`
}

// Body returns the position of the body orbiting at level l.
func (p Positions) Body(l physics.Level) Vec3 {
	switch l {
	case physics.LevelPlanet:
		return p.Planet
	case physics.LevelMoon:
		return p.Moon
	default:
		return p.Submoon
	}
}

// MoonOffset is the moon position relative to the planet.
func (p Positions) MoonOffset() Vec3 { return p.Moon.Sub(p.Planet) }

// SubmoonOffset is the submoon position relative to the moon.
func (p Positions) SubmoonOffset() Vec3 { return p.Submoon.Sub(p.Moon) }

func (p Positions) IsValid() bool {
	return p.Planet.IsValid() && p.Moon.IsValid() && p.Submoon.IsValid()
}

// OrbitalState holds the phase angle of each orbit, reduced to [0, 2π), and
// the number of whole turns completed.
type OrbitalState struct {
	Angles [physics.NumLevels]float64 `json:"angles"`
	Turns  [physics.NumLevels]uint64  `json:"turns"`
	Ticks  uint64                     `json:"ticks"`
}

// Unwrapped returns the monotone angle turns·2π + angle for level l.
func (s OrbitalState) Unwrapped(l physics.Level) float64 {
	return float64(s.Turns[l])*twoPi + s.Angles[l]
}

// advance adds delta radians to level l, reducing modulo 2π. math.Mod is
// exact, so the reduction adds no error beyond the addition itself. The
// turn count is derived from the remainder so the two always agree, and it
// saturates instead of wrapping around.
func (s *OrbitalState) advance(l physics.Level, delta float64) {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return
	}
	a := s.Angles[l] + delta
	if a >= twoPi {
		r := math.Mod(a, twoPi)
		n := math.Round((a - r) / twoPi)
		room := math.MaxUint64 - s.Turns[l]
		if n >= float64(room) || uint64(n) > room {
			s.Turns[l] = math.MaxUint64
		} else {
			s.Turns[l] += uint64(n)
		}
		a = r
	}
	s.Angles[l] = a
}

// Snapshot is a consistent copy of the engine state.
type Snapshot struct {
	Configured bool            `json:"configured"`
	Params     physics.Params  `json:"params"`
	Derived    physics.Derived `json:"derived"`
	Stats      stability.Stats `json:"stats"`
	Speeds     physics.Speeds  `json:"speeds"`
	State      OrbitalState    `json:"state"`
	Positions  Positions       `json:"positions"`
}
