package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
)

// SweepPoint is the evaluation of one parameter variant.
type SweepPoint struct {
	Value   float64
	Params  physics.Params
	Derived physics.Derived
	Stats   stability.Stats
	Speeds  physics.Speeds
}

// Sweep evaluates a base configuration with one parameter replaced by
// each of a list of values.
type Sweep struct {
	base   physics.Params
	field  string
	values []float64
}

func NewSweep(base physics.Params, field string, values []float64) *Sweep {
	return &Sweep{base: base, field: field, values: values}
}

// Run configures one engine per value in parallel. Points come back in the
// order of the values; the first failing variant aborts the sweep.
func (s *Sweep) Run(ctx context.Context) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(s.values))
	errs := make([]error, len(s.values))

	var wg sync.WaitGroup
	for i, v := range s.values {
		wg.Add(1)
		go func(idx int, value float64) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			p, err := s.base.With(s.field, value)
			if err != nil {
				errs[idx] = err
				return
			}

			eng, err := dynamo.NewWithParams(p)
			if err != nil {
				errs[idx] = fmt.Errorf("%s=%g: %w", s.field, value, err)
				return
			}

			snap := eng.Snapshot()
			points[idx] = SweepPoint{
				Value:   value,
				Params:  snap.Params,
				Derived: snap.Derived,
				Stats:   snap.Stats,
				Speeds:  snap.Speeds,
			}
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
