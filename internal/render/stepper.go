package render

import (
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/scene"
)

// PointsSource yields the primitive currently attached to the scene.
// *scene.Stage satisfies it.
type PointsSource interface {
	Points() *scene.Points
}

// Stepper advances the animated state shared by all surfaces.
type Stepper struct {
	source PointsSource
	orbit  *camera.Orbit
	speed  float64
}

// NewStepper spins the cloud at speed rad/s about +Y. orbit may be nil.
func NewStepper(source PointsSource, orbit *camera.Orbit, speed float64) *Stepper {
	return &Stepper{source: source, orbit: orbit, speed: speed}
}

// Step sets the rotation from absolute elapsed time, so a dropped frame
// never accumulates drift.
func (s *Stepper) Step(elapsed float64) {
	if s.orbit != nil {
		s.orbit.Update()
	}
	if pts := s.source.Points(); pts != nil {
		pts.RotationY = s.speed * elapsed
	}
}
