package camera

import "math"

// MaxPixelRatio caps the device pixel ratio.
const MaxPixelRatio = 2.0

// Surface is the drawing target resized alongside the camera.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

// Viewport keeps camera aspect and surface size in lockstep.
type Viewport struct {
	Width, Height int
	PixelRatio    float64

	camera  *Perspective
	surface Surface
}

// NewViewport binds cam and surface; surface may be nil for headless use.
func NewViewport(cam *Perspective, surface Surface) *Viewport {
	return &Viewport{camera: cam, surface: surface, PixelRatio: 1}
}

// Resize updates the camera aspect and the surface together. Zero or negative
// sizes are ignored (minimized windows report 0x0).
func (v *Viewport) Resize(width, height int, devicePixelRatio float64) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Width, v.Height = width, height
	v.PixelRatio = math.Min(math.Max(devicePixelRatio, 1), MaxPixelRatio)

	v.camera.SetAspect(float64(width) / float64(height))
	if v.surface != nil {
		v.surface.SetSize(width, height)
		v.surface.SetPixelRatio(v.PixelRatio)
	}
}

func (v *Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}
