package dynamo

import (
	"fmt"

	"github.com/san-kum/submoonsim/internal/physics"
)

// Domain errors for engine operations.
var (
	// ErrInvalidParameter indicates a non-positive or malformed mass or radius.
	ErrInvalidParameter = physics.ErrInvalidParameter

	// ErrDegenerateOrbit indicates an orbit whose period cannot be computed.
	ErrDegenerateOrbit = physics.ErrDegenerateOrbit
)

// ParameterError reports which parameter caused a rejected configuration.
type ParameterError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("dynamo: %s=%g rejected: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}

// Validate checks every parameter and returns a *ParameterError for the first
// one that is not positive and finite.
func Validate(p physics.Params) error {
	for _, f := range p.Fields() {
		if err := physics.RequirePositive(f.Name, f.Value); err != nil {
			return &ParameterError{Field: f.Name, Value: f.Value, Wrapped: err}
		}
	}
	return nil
}
