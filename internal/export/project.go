package export

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/galaxy/internal/camera"
)

// sprite is one projected point: center and radius in pixels plus color.
type sprite struct {
	x, y, radius float64
	r, g, b      float64
}

// viewFunc projects a world point to pixels, reporting its depth.
type viewFunc func(p mgl64.Vec3) (x, y, depth float64, ok bool)

func cameraView(cam *camera.Perspective, width, height int) viewFunc {
	proj := cam.Projector(width, height)
	return proj.Project
}

// minRadius keeps far points from vanishing below a pixel.
const minRadius = 0.5

// sprites projects every visible point of the frame.
func (fr Frame) sprites() []sprite {
	if fr.view == nil || fr.Buffers == nil {
		return nil
	}
	rot := mgl64.Rotate3DY(fr.RotationY)
	out := make([]sprite, 0, fr.Buffers.Len())
	for i := 0; i < fr.Buffers.Len(); i++ {
		x, y, z := fr.Buffers.Position(i)
		p := rot.Mul3x1(mgl64.Vec3{float64(x), float64(y), float64(z)})
		sx, sy, depth, ok := fr.view(p)
		if !ok {
			continue
		}
		r, g, b := fr.Buffers.Color(i)
		out = append(out, sprite{
			x:      sx,
			y:      sy,
			radius: math.Max(camera.PointPixels(fr.Size, depth, fr.Height)/2, minRadius),
			r:      float64(r),
			g:      float64(g),
			b:      float64(b),
		})
	}
	return out
}
