package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/submoonsim/internal/dynamo"
	"golang.org/x/time/rate"
)

// Runner drives a Driver for a fixed number of frames without a display.
type Runner struct {
	driver    *Driver
	observers []Observer
}

func NewRunner(d *Driver) *Runner {
	return &Runner{
		driver:    d,
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run plays cfg.Ticks frames. With cfg.Realtime set, frames are paced at
// cfg.FPS. On cancellation the partial result is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Ticks:     make([]int, 0, cfg.Ticks/every+2),
		Positions: make([]dynamo.Positions, 0, cfg.Ticks/every+2),
	}

	var limiter *rate.Limiter
	if cfg.Realtime {
		limiter = rate.NewLimiter(rate.Limit(cfg.FPS), 1)
	}

	eng := r.driver.Engine()
	result.Ticks = append(result.Ticks, 0)
	result.Positions = append(result.Positions, eng.Positions())

	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.Final = eng.Snapshot()
			return result, ctx.Err()
		default:
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				result.Final = eng.Snapshot()
				return result, err
			}
		}

		pos := r.driver.Frame()
		result.Frames++

		if len(r.observers) > 0 {
			snap := eng.Snapshot()
			for _, obs := range r.observers {
				obs.OnTick(i, snap)
			}
		}

		if i%every == 0 || i == cfg.Ticks {
			result.Ticks = append(result.Ticks, i)
			result.Positions = append(result.Positions, pos)
		}
	}

	result.Final = eng.Snapshot()
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, cfg.Ticks)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	if cfg.Realtime && !(cfg.FPS > 0) {
		return fmt.Errorf("%w: fps must be positive for real-time pacing", ErrInvalidConfig)
	}
	return nil
}
