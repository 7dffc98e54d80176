// Package viz provides terminal-based visualization for drivetrain runs.
//
// The package implements a live top-down field view using the Bubble Tea
// framework:
//
//   - [Model]: live simulation view with chassis, modules, and trail
//   - [Canvas]: Braille-based pixel canvas with a world-space viewport
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the initial pose
//	Q     - Quit
package viz
