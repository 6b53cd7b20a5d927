// Package viz renders scenes in the terminal.
//
// A Braille [Canvas] gives a 2x4 sub-pixel grid per character cell.
// The [Projector] carries a scene's DrawList through the shared orbit
// camera onto that grid, and [Model] wraps the result in a Bubble Tea
// program with the same key bindings as the GUI window.
//
// # Key Bindings
//
//	Space - Pause/Resume (or trigger a scripted scene)
//	R     - Reset to initial state
//	Tab   - Next scene
//	[ ]   - Density down/up
//	M     - Switch scene mode
//	Arrow - Orbit the camera
//	+/-   - Zoom
//	T     - Cycle color themes
//	Q     - Quit
package viz
