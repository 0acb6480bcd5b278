package dynamo

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
)

// Engine advances a nested circular-orbit system. The zero value is an
// unconfigured engine whose Tick returns zero positions.
type Engine struct {
	mu sync.RWMutex

	configured bool
	params     physics.Params
	derived    physics.Derived
	stats      stability.Stats
	speeds     physics.Speeds
	state      OrbitalState
	positions  Positions
}

func New() *Engine {
	return &Engine{}
}

// NewWithParams returns an engine configured with p.
func NewWithParams(p physics.Params) (*Engine, error) {
	e := New()
	if _, err := e.Configure(p); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure validates p, recomputes derived quantities, speeds and stats,
// and zeroes the orbital state. On error the previous configuration is kept.
func (e *Engine) Configure(p physics.Params) (physics.Derived, error) {
	return e.apply(p, true)
}

// Update is Configure without the phase reset, for live parameter tuning.
func (e *Engine) Update(p physics.Params) (physics.Derived, error) {
	return e.apply(p, false)
}

func (e *Engine) apply(p physics.Params, reset bool) (physics.Derived, error) {
	if err := Validate(p); err != nil {
		return physics.Derived{}, err
	}
	derived, err := physics.Derive(p)
	if err != nil {
		return physics.Derived{}, fmt.Errorf("dynamo: derived quantities: %w", err)
	}
	speeds := physics.OrbitSpeeds(p, derived)
	stats := stability.Score(p, derived)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.params = p
	e.derived = derived
	e.speeds = speeds
	e.stats = stats
	if reset || !e.configured {
		e.state = OrbitalState{}
	}
	e.configured = true
	e.positions = Positions{}
	e.positions = e.resolve()
	return derived, nil
}

// Reset zeroes the phase angles, keeping the configuration.
func (e *Engine) Reset() Positions {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = OrbitalState{}
	if e.configured {
		e.positions = e.resolve()
	}
	return e.positions
}

// Tick advances every non-frozen orbit by speed × step when playing and
// returns the resolved positions. When paused, or for a non-positive or
// non-finite step, the last positions are returned unchanged.
func (e *Engine) Tick(step float64, playing bool) Positions {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.configured || !playing || !(step > 0) || math.IsInf(step, 0) {
		return e.positions
	}

	for i := range e.state.Angles {
		l := physics.Level(i)
		if e.speeds.Frozen[l] {
			continue
		}
		e.state.advance(l, e.speeds.Omega[l]*step)
	}
	e.state.Ticks++
	e.positions = e.resolve()
	return e.positions
}

// resolve composes positions planet → moon → submoon from the current
// angles. A non-finite result freezes every orbit and keeps the last good
// positions. Callers hold the write lock.
func (e *Engine) resolve() Positions {
	a := e.state.Angles
	planet := orbitPoint(Vec3{}, e.params.PlanetOrbitRadius, a[physics.LevelPlanet])
	moon := orbitPoint(planet, e.derived.MoonOrbitDistance, a[physics.LevelMoon])
	submoon := orbitPoint(moon, e.derived.SubmoonOrbitDistance, a[physics.LevelSubmoon])

	pos := Positions{Planet: planet, Moon: moon, Submoon: submoon}
	if !pos.IsValid() {
		for i := range e.speeds.Frozen {
			e.speeds.Frozen[i] = true
			e.speeds.Omega[i] = 0
		}
		return e.positions
	}
	return pos
}

// Positions returns the positions resolved by the last tick.
func (e *Engine) Positions() Positions {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.positions
}

// Params returns the active parameter set.
func (e *Engine) Params() physics.Params {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// Stats returns the stability verdict of the active configuration.
func (e *Engine) Stats() stability.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats.Clone()
}

// Snapshot returns a consistent copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Configured: e.configured,
		Params:     e.params,
		Derived:    e.derived,
		Stats:      e.stats.Clone(),
		Speeds:     e.speeds,
		State:      e.state,
		Positions:  e.positions,
	}
}

// ComputeStability scores a configuration without touching any engine.
func ComputeStability(p physics.Params, d physics.Derived) stability.Stats {
	return stability.Score(p, d)
}
