// Package dynamo provides the orbit engine for a star → planet → moon →
// submoon hierarchy.
//
// An [Engine] owns one parameter set, its derived quantities, the stability
// verdict and a single [OrbitalState]:
//
//   - [Engine.Configure]: validate, derive and reset phases atomically
//   - [Engine.Update]: like Configure but keeps the current phases
//   - [Engine.Tick]: advance the phases and resolve nested positions
//   - [Engine.Snapshot]: consistent copy for renderers and overlays
//
// # Example
//
//	eng := dynamo.New()
//	if _, err := eng.Configure(params); err != nil {
//	    return err // previous configuration is retained
//	}
//	for frame := 0; frame < 600; frame++ {
//	    pos := eng.Tick(speed, playing)
//	    render(pos)
//	}
//
// # Thread Safety
//
// Engine methods are safe for concurrent use. Tick, Configure, Update and
// Reset serialize on a write lock; Snapshot readers never observe a
// half-applied parameter change or a tick in progress.
package dynamo
