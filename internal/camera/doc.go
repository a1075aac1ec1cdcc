// Package camera holds the perspective camera, the viewport that keeps camera
// and drawing surface the same size, and damped orbit controls.
//
// All math is double precision via mathgl's mgl64. Renderers convert to their
// own vector types at the edge.
package camera
