package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const polarEpsilon = 1e-6

// Orbit moves a camera on a sphere around a target. Input accumulates as
// pending deltas; Update applies a fraction of them each frame when damping
// is on, which gives the controls their inertia.
type Orbit struct {
	Damping     float64
	MinDistance float64
	MaxDistance float64

	cam    *Perspective
	radius float64
	theta  float64 // azimuth about +Y, measured from +Z
	phi    float64 // polar angle from +Y

	dTheta, dPhi float64
	scale        float64
	pan          mgl64.Vec3
}

// NewOrbit starts from the camera's current pose. damping 0 applies input
// immediately.
func NewOrbit(cam *Perspective, damping float64) *Orbit {
	o := &Orbit{
		Damping:     damping,
		MinDistance: 0.5,
		MaxDistance: 50,
		cam:         cam,
		scale:       1,
	}
	o.sync()
	return o
}

func (o *Orbit) sync() {
	offset := o.cam.Position.Sub(o.cam.Target)
	o.radius = offset.Len()
	if o.radius == 0 {
		o.theta, o.phi = 0, math.Pi/2
		return
	}
	o.theta = math.Atan2(offset.X(), offset.Z())
	o.phi = math.Acos(mgl64.Clamp(offset.Y()/o.radius, -1, 1))
}

// Rotate queues an azimuth and polar change in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	o.dTheta += dAzimuth
	o.dPhi += dPolar
}

// Zoom queues a distance multiplier; >1 moves away, <1 moves closer.
func (o *Orbit) Zoom(factor float64) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Pan queues a target shift in camera-plane units.
func (o *Orbit) Pan(dx, dy float64) {
	right, up := o.cam.Basis()
	o.pan = o.pan.Add(right.Mul(dx)).Add(up.Mul(dy))
}

// Azimuth, Polar and Radius expose the spherical pose.
func (o *Orbit) Azimuth() float64 { return o.theta }
func (o *Orbit) Polar() float64   { return o.phi }
func (o *Orbit) Radius() float64  { return o.radius }

// Pending reports whether queued input is still being applied.
func (o *Orbit) Pending() bool {
	const eps = 1e-9
	return math.Abs(o.dTheta) > eps || math.Abs(o.dPhi) > eps || o.pan.Len() > eps || o.scale != 1
}

// Update advances the controls one frame and writes the camera pose.
func (o *Orbit) Update() {
	f := 1.0
	if o.Damping > 0 {
		f = o.Damping
	}

	o.theta += o.dTheta * f
	o.phi = mgl64.Clamp(o.phi+o.dPhi*f, polarEpsilon, math.Pi-polarEpsilon)
	o.radius = mgl64.Clamp(o.radius*o.scale, o.MinDistance, o.MaxDistance)
	o.cam.Target = o.cam.Target.Add(o.pan.Mul(f))

	sinPhi := math.Sin(o.phi)
	offset := mgl64.Vec3{
		o.radius * sinPhi * math.Sin(o.theta),
		o.radius * math.Cos(o.phi),
		o.radius * sinPhi * math.Cos(o.theta),
	}
	o.cam.Position = o.cam.Target.Add(offset)

	if o.Damping > 0 {
		o.dTheta *= 1 - o.Damping
		o.dPhi *= 1 - o.Damping
		o.pan = o.pan.Mul(1 - o.Damping)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = mgl64.Vec3{}
	}
	o.scale = 1
}
