package sim

import (
	"errors"

	"github.com/san-kum/submoonsim/internal/dynamo"
)

var (
	ErrInvalidSpeed  = errors.New("sim: speed must be finite and non-negative")
	ErrInvalidConfig = errors.New("sim: invalid run config")
)

// Mode is the play state of a Driver.
type Mode int

const (
	Paused Mode = iota
	Playing
)

func (m Mode) String() string {
	if m == Playing {
		return "playing"
	}
	return "paused"
}

// Observer is notified after every frame of a headless run.
type Observer interface {
	OnTick(tick int, snap dynamo.Snapshot)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(tick int, snap dynamo.Snapshot)

func (f ObserverFunc) OnTick(tick int, snap dynamo.Snapshot) { f(tick, snap) }

type Config struct {
	Ticks       int
	FPS         float64
	Realtime    bool
	SampleEvery int
}

// Result holds the sampled positions of a run. Ticks[i] is the frame at
// which Positions[i] was taken; frame 0 is the configured starting point.
type Result struct {
	Ticks     []int
	Positions []dynamo.Positions
	Final     dynamo.Snapshot
	Frames    int
}
