package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perspective is a pinhole camera. FOV is vertical, in degrees.
type Perspective struct {
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

func NewPerspective(fov, aspect, near, far float64) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
}

func (c *Perspective) SetAspect(aspect float64) {
	if aspect > 0 && !math.IsInf(aspect, 0) {
		c.Aspect = aspect
	}
}

func (c *Perspective) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Perspective) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Perspective) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Distance from the camera to its target.
func (c *Perspective) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Basis returns the camera's world-space right and up unit vectors, used to
// orient billboards toward the viewer.
func (c *Perspective) Basis() (right, up mgl64.Vec3) {
	v := c.View()
	right = mgl64.Vec3{v[0], v[4], v[8]}
	up = mgl64.Vec3{v[1], v[5], v[9]}
	return right, up
}

// Projector caches the view-projection matrix for projecting many points
// against one camera pose.
type Projector struct {
	vp            mgl64.Mat4
	width, height float64
}

func (c *Perspective) Projector(width, height int) Projector {
	return Projector{vp: c.ViewProjection(), width: float64(width), height: float64(height)}
}

// Project maps a world point to pixel coordinates with the origin top-left.
// depth is the clip-space w (distance along the view axis); ok is false for
// points behind the camera or outside the frustum.
func (p Projector) Project(pt mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.vp.Mul4x1(pt.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	x = (nx + 1) / 2 * p.width
	y = (1 - ny) / 2 * p.height
	ok = nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1 && nz >= -1 && nz <= 1
	return x, y, w, ok
}

// Project is a one-off Projector(width, height).Project(pt).
func (c *Perspective) Project(pt mgl64.Vec3, width, height int) (x, y, depth float64, ok bool) {
	return c.Projector(width, height).Project(pt)
}

// RotateY rotates a point about the vertical axis, matching the rotation the
// render loop applies to the point cloud.
func RotateY(pt mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(angle).Mul3x1(pt)
}

// PointPixels is the on-screen diameter of an attenuated point sprite of the
// given size at depth, for a surface height pixels tall.
func PointPixels(size, depth float64, height int) float64 {
	if depth <= 0 {
		return 0
	}
	return size * float64(height) / 2 / depth
}

// SpriteSide is the world-space side of a camera-facing quad that covers the
// same pixels as PointPixels at any depth.
func (c *Perspective) SpriteSide(size float64) float64 {
	return size * math.Tan(mgl64.DegToRad(c.FOV)/2)
}

// WorldPerPixel is how far one pixel of drag moves the target in the plane
// through it, for a surface height pixels tall.
func (c *Perspective) WorldPerPixel(height int) float64 {
	if height <= 0 {
		return 0
	}
	return 2 * c.Distance() * math.Tan(mgl64.DegToRad(c.FOV)/2) / float64(height)
}
