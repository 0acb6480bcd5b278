package sim

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/submoonsim/internal/dynamo"
)

// Driver holds the play state and speed multiplier and turns them into
// engine ticks. A new driver starts Playing.
type Driver struct {
	mu     sync.Mutex
	engine *dynamo.Engine
	mode   Mode
	speed  float64
}

func NewDriver(e *dynamo.Engine, speed float64) (*Driver, error) {
	d := &Driver{engine: e, mode: Playing}
	if err := d.SetSpeed(speed); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) Engine() *dynamo.Engine { return d.engine }

// Toggle flips between Playing and Paused and returns the new mode.
func (d *Driver) Toggle() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == Playing {
		d.mode = Paused
	} else {
		d.mode = Playing
	}
	return d.mode
}

func (d *Driver) Play() {
	d.mu.Lock()
	d.mode = Playing
	d.mu.Unlock()
}

func (d *Driver) Pause() {
	d.mu.Lock()
	d.mode = Paused
	d.mu.Unlock()
}

func (d *Driver) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Driver) Playing() bool { return d.Mode() == Playing }

// SetSpeed sets the per-frame multiplier. Zero is allowed and holds the
// bodies still while playing.
func (d *Driver) SetSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSpeed, speed)
	}
	d.mu.Lock()
	d.speed = speed
	d.mu.Unlock()
	return nil
}

func (d *Driver) Speed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speed
}

// Frame advances the engine by one tick at the current speed.
func (d *Driver) Frame() dynamo.Positions {
	d.mu.Lock()
	speed, playing := d.speed, d.mode == Playing
	d.mu.Unlock()
	return d.engine.Tick(speed, playing)
}
