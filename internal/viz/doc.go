// Package viz is the terminal galaxy viewer.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: projects the point cloud through the shared camera onto a
//     braille canvas and hosts the parameter panel
//   - [Canvas]: Braille-based pixel canvas with additive per-cell color
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Arrows/WASD - Orbit the camera
//	+/-         - Zoom
//	Tab/J/K     - Select a parameter
//	H/L         - Adjust the draft by one step (shift for ten)
//	Enter       - Commit the draft and regenerate
//	Esc         - Drop the draft
//	E           - Type a value or hex color
//	P           - Cycle presets
//	R           - Regenerate with a fresh seed
//	T           - Cycle color themes
//	Space       - Pause/Resume rotation
//	?           - Show help
package viz
