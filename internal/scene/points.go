package scene

import (
	"github.com/google/uuid"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
)

type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

func (b Blending) String() string {
	switch b {
	case AdditiveBlending:
		return "additive"
	default:
		return "normal"
	}
}

// Material describes how a point cloud is composited. Renderers read it;
// nothing in this package draws.
type Material struct {
	Size            float64
	SizeAttenuation bool
	DepthWrite      bool
	Blending        Blending
	VertexColors    bool
	Color           config.Color

	disposed bool
}

// NewPointsMaterial is the galaxy's fixed point material: additive, vertex
// colored, perspective-attenuated, no depth writes.
func NewPointsMaterial(size float64) *Material {
	return &Material{
		Size:            size,
		SizeAttenuation: true,
		DepthWrite:      false,
		Blending:        AdditiveBlending,
		VertexColors:    true,
		Color:           config.Color{R: 1, G: 1, B: 1},
	}
}

func (m *Material) Dispose()       { m.disposed = true }
func (m *Material) Disposed() bool { return m.disposed }

// Geometry owns the position and color buffers of one generation.
type Geometry struct {
	Buffers *galaxy.Buffers
}

func (g *Geometry) Count() int { return g.Buffers.Len() }

func (g *Geometry) Dispose() {
	g.Buffers.Release()
}

func (g *Geometry) Disposed() bool { return g.Buffers.Released() }

// Points is the drawable point-cloud primitive. It is never mutated in place
// apart from RotationY; regeneration builds a new one.
type Points struct {
	ID        uuid.UUID
	Geometry  *Geometry
	Material  *Material
	RotationY float64
}

func NewPoints(buf *galaxy.Buffers, size float64) *Points {
	return &Points{
		ID:       uuid.New(),
		Geometry: &Geometry{Buffers: buf},
		Material: NewPointsMaterial(size),
	}
}

// Dispose releases geometry and material. Safe to call twice.
func (p *Points) Dispose() {
	if p == nil {
		return
	}
	p.Geometry.Dispose()
	p.Material.Dispose()
}

func (p *Points) Disposed() bool {
	return p.Geometry.Disposed() && p.Material.Disposed()
}
