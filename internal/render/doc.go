// Package render drives the per-frame update.
//
// A [Loop] calls its [Driver] once per frame with the seconds elapsed since
// the [Clock] started, until the driver asks to close, Stop is called, or the
// context ends. Everything runs on the caller's goroutine; the driver is
// expected to block on display refresh (raylib's EndDrawing does).
//
// [Stepper] is the frame body shared by every surface: advance orbit damping,
// then spin the attached point cloud about the vertical axis.
package render
