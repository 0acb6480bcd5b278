// Package viz renders a live terminal view of the orbit engine.
//
// The view is a Bubble Tea program:
//
//   - [Model]: ticks a [sim.Driver] at 60 fps and draws the system
//   - [Canvas]: braille dot grid with per-cell ink for coloring
//   - [Camera]: top-down or inclined projection centered on a body
//   - [Recorder]: captures canvas frames as an animated GIF
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Reset parameters and phases
//	Tab   - Select parameter, Up/Down to tune it
//	+/-   - Change speed
//	O     - Toggle orbit lines
//	F     - Cycle focus between star, planet and moon
//	V     - Toggle inclined view
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// Parameter changes go through [dynamo.Engine.Update], so tuning keeps the
// bodies where they are instead of snapping them back to phase zero.
package viz
