package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
)

func defaultParams() physics.Params {
	return physics.Params{
		PlanetMass:         28,
		MoonMass:           0.5,
		SubmoonMass:        0.05,
		PlanetOrbitRadius:  20,
		MoonOrbitRadius:    0.4,
		SubmoonOrbitRadius: 0.5,
	}
}

func newDriver(t *testing.T, speed float64) *Driver {
	t.Helper()
	eng, err := dynamo.NewWithParams(defaultParams())
	if err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	d, err := NewDriver(eng, speed)
	if err != nil {
		t.Fatalf("driver failed: %v", err)
	}
	return d
}

func TestDriverStateMachine(t *testing.T) {
	d := newDriver(t, 1)

	if !d.Playing() {
		t.Fatal("new driver should be playing")
	}
	if m := d.Toggle(); m != Paused {
		t.Errorf("expected paused after toggle, got %s", m)
	}
	if m := d.Toggle(); m != Playing {
		t.Errorf("expected playing after second toggle, got %s", m)
	}

	d.Pause()
	if d.Playing() {
		t.Error("expected paused")
	}
	d.Play()
	if !d.Playing() {
		t.Error("expected playing")
	}
}

func TestDriverPausedFrameHolds(t *testing.T) {
	d := newDriver(t, 1)
	d.Frame()
	d.Pause()

	held := d.Frame()
	for i := 0; i < 10; i++ {
		if got := d.Frame(); got != held {
			t.Fatalf("frame %d moved while paused", i)
		}
	}

	d.Play()
	if got := d.Frame(); got == held {
		t.Error("frame did not move after resuming")
	}
}

func TestDriverSetSpeed(t *testing.T) {
	d := newDriver(t, 1)

	tests := []struct {
		name    string
		speed   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"fast", 5, false},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.SetSpeed(tt.speed)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSpeed) {
					t.Errorf("expected ErrInvalidSpeed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Speed() != tt.speed {
				t.Errorf("expected speed %f, got %f", tt.speed, d.Speed())
			}
		})
	}
}

func TestDriverZeroSpeedHolds(t *testing.T) {
	d := newDriver(t, 0)
	start := d.Engine().Positions()
	for i := 0; i < 10; i++ {
		if got := d.Frame(); got != start {
			t.Fatalf("frame %d moved at zero speed", i)
		}
	}
}

func TestNewDriverRejectsBadSpeed(t *testing.T) {
	if _, err := NewDriver(dynamo.New(), -2); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
}

type countingObserver struct {
	ticks []int
}

func (c *countingObserver) OnTick(tick int, snap dynamo.Snapshot) {
	c.ticks = append(c.ticks, tick)
}

func TestRunnerRun(t *testing.T) {
	d := newDriver(t, 1)
	r := NewRunner(d)
	obs := &countingObserver{}
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), Config{Ticks: 100, SampleEvery: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 100 {
		t.Errorf("expected 100 frames, got %d", result.Frames)
	}
	if len(result.Ticks) != 11 || len(result.Positions) != 11 {
		t.Errorf("expected 11 samples, got %d ticks and %d positions", len(result.Ticks), len(result.Positions))
	}
	if result.Ticks[0] != 0 || result.Ticks[len(result.Ticks)-1] != 100 {
		t.Errorf("unexpected sample ticks %v", result.Ticks)
	}
	if len(obs.ticks) != 100 {
		t.Errorf("observer saw %d ticks", len(obs.ticks))
	}
	if result.Final.State.Ticks != 100 {
		t.Errorf("engine ticked %d times", result.Final.State.Ticks)
	}
	if result.Final.Positions != result.Positions[len(result.Positions)-1] {
		t.Error("final snapshot does not match last sample")
	}
}

func TestRunnerSamplesLastTick(t *testing.T) {
	r := NewRunner(newDriver(t, 1))
	result, err := r.Run(context.Background(), Config{Ticks: 25, SampleEvery: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []int{0, 10, 20, 25}
	if len(result.Ticks) != len(want) {
		t.Fatalf("expected ticks %v, got %v", want, result.Ticks)
	}
	for i := range want {
		if result.Ticks[i] != want[i] {
			t.Errorf("sample %d: expected tick %d, got %d", i, want[i], result.Ticks[i])
		}
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := NewRunner(newDriver(t, 1))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0}},
		{"negative ticks", Config{Ticks: -5}},
		{"negative sample", Config{Ticks: 10, SampleEvery: -1}},
		{"realtime without fps", Config{Ticks: 10, Realtime: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunnerCancel(t *testing.T) {
	r := NewRunner(newDriver(t, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{Ticks: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Frames != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestRunnerRealtimePacing(t *testing.T) {
	r := NewRunner(newDriver(t, 1))

	start := time.Now()
	result, err := r.Run(context.Background(), Config{Ticks: 6, FPS: 100, Realtime: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 6 {
		t.Errorf("expected 6 frames, got %d", result.Frames)
	}
	// burst of one, then five waits of 10ms
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("run finished too fast for 100 fps: %v", elapsed)
	}
}

func TestSweepRun(t *testing.T) {
	values := Linspace(0.2, 0.8, 7)
	points, err := NewSweep(defaultParams(), "submoon_orbit_radius", values).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(points) != len(values) {
		t.Fatalf("expected %d points, got %d", len(values), len(points))
	}

	for i, p := range points {
		if p.Value != values[i] {
			t.Errorf("point %d out of order: %f", i, p.Value)
		}
		if p.Params.SubmoonOrbitRadius != values[i] {
			t.Errorf("point %d: param not applied", i)
		}
	}

	// 0.5 sits in the best orbital band, 0.2 in the worst non-zero one
	best := points[3].Stats.Score
	worst := points[0].Stats.Score
	if best-worst != 20 {
		t.Errorf("expected orbital spread of 20, got %d (%d vs %d)", best-worst, best, worst)
	}
}

func TestSweepRejectsInvalidValue(t *testing.T) {
	_, err := NewSweep(defaultParams(), "moon_mass", []float64{0.5, -1}).Run(context.Background())
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestSweepUnknownField(t *testing.T) {
	if _, err := NewSweep(defaultParams(), "spin", []float64{1}).Run(context.Background()); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("expected [3], got %v", got)
	}
}
