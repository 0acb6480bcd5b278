package physics

import (
	"errors"
	"math"
	"testing"
)

func TestHillRadiusExample(t *testing.T) {
	r, err := HillRadius(1000, 28, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 20 * math.Cbrt(28.0/3000.0)
	if math.Abs(r-expected) > 1e-12 {
		t.Errorf("expected %.6f, got %.6f", expected, r)
	}
	if math.Abs(r-4.21) > 0.01 {
		t.Errorf("expected ~4.21, got %.4f", r)
	}
}

func TestHillRadiusScaling(t *testing.T) {
	tests := []struct {
		primary, secondary, distance float64
	}{
		{1, 1, 1},
		{1000, 0.5, 3},
		{28, 0.5, 1.68},
		{0.5, 0.05, 0.3},
		{1e6, 1e-6, 1e3},
	}

	for _, tt := range tests {
		r, err := HillRadius(tt.primary, tt.secondary, tt.distance)
		if err != nil {
			t.Fatalf("HillRadius(%g, %g, %g): %v", tt.primary, tt.secondary, tt.distance, err)
		}
		if r <= 0 {
			t.Errorf("HillRadius(%g, %g, %g) = %g, want > 0", tt.primary, tt.secondary, tt.distance, r)
		}

		doubled, _ := HillRadius(tt.primary, tt.secondary, 2*tt.distance)
		if math.Abs(doubled-2*r) > 1e-9*r {
			t.Errorf("hill radius should scale linearly with distance: %g vs %g", doubled, 2*r)
		}

		eight, _ := HillRadius(tt.primary, 8*tt.secondary, tt.distance)
		if math.Abs(eight-2*r) > 1e-9*r {
			t.Errorf("hill radius should scale with cbrt of secondary mass: %g vs %g", eight, 2*r)
		}
	}
}

func TestHillRadiusInvalid(t *testing.T) {
	tests := []struct {
		name                         string
		primary, secondary, distance float64
	}{
		{"zero primary", 0, 1, 1},
		{"negative secondary", 1, -1, 1},
		{"zero distance", 1, 1, 0},
		{"NaN distance", 1, 1, math.NaN()},
		{"Inf primary", math.Inf(1), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HillRadius(tt.primary, tt.secondary, tt.distance)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestRocheLimit(t *testing.T) {
	d, err := RocheLimit(1, 8, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-4.88) > 1e-9 {
		t.Errorf("expected 4.88, got %f", d)
	}

	if _, err := RocheLimit(1, 0, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero density, got %v", err)
	}
	if _, err := RocheLimit(-2, 1, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative radius, got %v", err)
	}
}

func TestDerive(t *testing.T) {
	p := Params{
		PlanetMass:         28,
		MoonMass:           0.5,
		SubmoonMass:        0.05,
		PlanetOrbitRadius:  20,
		MoonOrbitRadius:    0.4,
		SubmoonOrbitRadius: 0.5,
	}

	d, err := Derive(p)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	if math.Abs(d.PlanetToMoonMassRatio-56) > 1e-9 {
		t.Errorf("expected planet/moon ratio 56, got %f", d.PlanetToMoonMassRatio)
	}
	if math.Abs(d.MoonToSubmoonMassRatio-10) > 1e-9 {
		t.Errorf("expected moon/submoon ratio 10, got %f", d.MoonToSubmoonMassRatio)
	}

	hillPlanet := 20 * math.Cbrt(28.0/3000.0)
	if math.Abs(d.HillRadiusOfPlanet-hillPlanet) > 1e-12 {
		t.Errorf("expected planet hill radius %f, got %f", hillPlanet, d.HillRadiusOfPlanet)
	}
	if math.Abs(d.MoonOrbitDistance-0.4*hillPlanet) > 1e-12 {
		t.Errorf("moon distance should be a fraction of the planet hill radius, got %f", d.MoonOrbitDistance)
	}

	hillMoon := d.MoonOrbitDistance * math.Cbrt(0.5/(3*28))
	if math.Abs(d.HillRadiusOfMoon-hillMoon) > 1e-12 {
		t.Errorf("expected moon hill radius %f, got %f", hillMoon, d.HillRadiusOfMoon)
	}
	if math.Abs(d.SubmoonOrbitDistance-0.5*hillMoon) > 1e-12 {
		t.Errorf("submoon distance should be a fraction of the moon hill radius, got %f", d.SubmoonOrbitDistance)
	}

	if d.RocheLimit <= 0 {
		t.Errorf("expected positive roche limit, got %f", d.RocheLimit)
	}
	if d.MoonWithinRoche != (d.MoonOrbitDistance < d.RocheLimit) {
		t.Error("MoonWithinRoche inconsistent with distances")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	p := Params{25, 0.5, 0.08, 20, 0.4, 0.5}

	a, err := Derive(p)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	b, _ := Derive(p)

	if a != b {
		t.Errorf("derive not deterministic: %+v vs %+v", a, b)
	}
}

func TestDeriveInvalid(t *testing.T) {
	base := Params{28, 0.5, 0.05, 20, 0.4, 0.5}

	for _, f := range base.Fields() {
		for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			p, err := base.With(f.Name, bad)
			if err != nil {
				t.Fatalf("with %s: %v", f.Name, err)
			}
			if _, err := Derive(p); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%s=%g: expected ErrInvalidParameter, got %v", f.Name, bad, err)
			}
		}
	}
}

func TestParamsGetWith(t *testing.T) {
	p := Params{28, 0.5, 0.05, 20, 0.4, 0.5}

	v, err := p.Get("submoon_orbit_radius")
	if err != nil || v != 0.5 {
		t.Errorf("expected 0.5, got %f (%v)", v, err)
	}

	q, err := p.With("moon_mass", 1.5)
	if err != nil {
		t.Fatalf("with failed: %v", err)
	}
	if q.MoonMass != 1.5 || p.MoonMass != 0.5 {
		t.Error("With should return a modified copy")
	}

	if _, err := p.Get("nonexistent"); err == nil {
		t.Error("expected error for unknown param")
	}
	if _, err := p.With("nonexistent", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}
