package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/scene"
)

// quadsPerBatch keeps each Begin/End block inside raylib's default batch.
const quadsPerBatch = 1024

func (a *App) camera3D() rl.Camera3D {
	c := a.session.Camera
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// drawPoints draws the attached primitive as camera-facing quads, summed
// with additive blending and without depth writes.
func (a *App) drawPoints() {
	pts := a.session.Stage.Points()
	if pts == nil || pts.Disposed() {
		return
	}
	buf := pts.Geometry.Buffers
	mat := pts.Material
	cam := a.session.Camera

	rl.SetClipPlanes(cam.Near, cam.Far)
	rl.BeginMode3D(a.camera3D())
	if mat.Blending == scene.AdditiveBlending {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	if !mat.DepthWrite {
		rl.DisableDepthMask()
	}

	rl.PushMatrix()
	rl.Rotatef(float32(mgl64.RadToDeg(pts.RotationY)), 0, 1, 0)

	// The model matrix spins the cloud, so the billboard basis is rotated
	// back into object space.
	right, up := cam.Basis()
	right = camera.RotateY(right, -pts.RotationY)
	up = camera.RotateY(up, -pts.RotationY)
	half := cam.SpriteSide(mat.Size) / 2
	r := right.Mul(half)
	u := up.Mul(half)
	rx, ry, rz := float32(r.X()), float32(r.Y()), float32(r.Z())
	ux, uy, uz := float32(u.X()), float32(u.Y()), float32(u.Z())

	n := buf.Len()
	for start := 0; start < n; start += quadsPerBatch {
		end := min(start+quadsPerBatch, n)
		rl.CheckRenderBatchLimit(int32(4 * (end - start)))
		rl.Begin(rl.Quads)
		for i := start; i < end; i++ {
			x, y, z := buf.Position(i)
			cr, cg, cb := buf.Color(i)
			if !mat.VertexColors {
				cr, cg, cb = float32(mat.Color.R), float32(mat.Color.G), float32(mat.Color.B)
			}
			rl.Color4f(cr, cg, cb, 1)
			rl.Vertex3f(x-rx-ux, y-ry-uy, z-rz-uz)
			rl.Vertex3f(x+rx-ux, y+ry-uy, z+rz-uz)
			rl.Vertex3f(x+rx+ux, y+ry+uy, z+rz+uz)
			rl.Vertex3f(x-rx+ux, y-ry+uy, z-rz+uz)
		}
		rl.End()
	}

	rl.PopMatrix()
	rl.DrawRenderBatchActive()
	rl.EnableDepthMask()
	if mat.Blending == scene.AdditiveBlending {
		rl.EndBlendMode()
	}
	rl.EndMode3D()
}
