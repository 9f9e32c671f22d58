// Package viz renders a running particle life simulation in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one simulation with metrics side panel
//   - [Menu]: preset picker that launches the live view
//   - [Canvas]: Braille canvas where each cell remembers the particle type
//     that lit it, so types keep their color
//   - [Recorder]: GIF capture of the particle field
//   - [SnapshotSVG]: static SVG of particle positions
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Randomize the interaction matrix
//	1-5   - Load matrix preset
//	W     - Toggle wrap/bounce edges
//	N     - Reset particles
//	+/-   - Steps per frame
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Click - Spawn a burst of particles
//	?     - Show help overlay
package viz
