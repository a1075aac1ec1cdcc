package galaxy

import (
	"math"

	"github.com/san-kum/galaxy/internal/config"
)

// DrawsPerPoint is the number of Source.Float64 calls spent on each point.
const DrawsPerPoint = 8

// FlattenY squashes the vertical jitter so the cloud reads as a disk.
const FlattenY = 0.5

// Source yields uniform values in [0,1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Options enables the optional jitter scaling and accent colors. The zero
// value emits unscaled jitter and the plain gradient.
type Options struct {
	// ApplyRandomness scales each jitter offset by randomness*radius.
	ApplyRandomness bool
	// AccentColors lets three of the four accent picks override the gradient.
	AccentColors bool
}

func OptionsFrom(c config.GeneratorConfig) Options {
	return Options{ApplyRandomness: c.ApplyRandomness, AccentColors: c.AccentColors}
}

// AccentColors are written for accent picks 1, 2 and 3; pick 0 keeps the
// gradient color.
var AccentColors = [3]config.Color{
	{R: 0.827, G: 0.106, B: 1},
	{R: 0.129, G: 0.141, B: 0.369},
	{R: 0.984, G: 1, B: 0.42},
}

// Buffers holds one generation's worth of point data.
type Buffers struct {
	Positions []float32
	Colors    []float32
}

func (b *Buffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / 3
}

func (b *Buffers) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2]
}

func (b *Buffers) Color(i int) (r, g, bl float32) {
	i3 := i * 3
	return b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2]
}

// Release drops the backing arrays. The buffers are empty afterwards.
func (b *Buffers) Release() {
	if b == nil {
		return
	}
	b.Positions = nil
	b.Colors = nil
}

func (b *Buffers) Released() bool {
	return b == nil || (b.Positions == nil && b.Colors == nil)
}

// BranchIndex is the spoke point i lands on. branches below 1 count as 1.
func BranchIndex(i, branches int) int {
	if branches < 1 {
		branches = 1
	}
	return i % branches
}

// BranchAngle is the base angle of point i's spoke in radians.
func BranchAngle(i, branches int) float64 {
	if branches < 1 {
		branches = 1
	}
	return float64(BranchIndex(i, branches)) * 2 * math.Pi / float64(branches)
}

// Generate builds p.Count points. It never validates p: out of range values
// produce odd geometry, not errors, except that branches below 1 count as 1,
// a non-positive count yields empty buffers and a non-positive radius puts
// every point at the inside color.
func Generate(p config.Parameters, rng Source, opts Options) *Buffers {
	count := p.Count
	if count < 0 {
		count = 0
	}
	buf := &Buffers{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}

	scale := 1.0
	if opts.ApplyRandomness {
		scale = p.Randomness * p.Radius
	}

	for i := 0; i < count; i++ {
		i3 := i * 3

		u := rng.Float64()
		theta := BranchAngle(i, p.Branches)
		r := u * p.Radius
		angle := theta + r*p.Spin

		jx := jitter(rng, p.RandomnessPower) * scale
		jy := jitter(rng, p.RandomnessPower) * FlattenY * scale
		jz := jitter(rng, p.RandomnessPower) * scale

		buf.Positions[i3] = float32(r*math.Cos(angle) + jx)
		buf.Positions[i3+1] = float32(jy)
		buf.Positions[i3+2] = float32(r*math.Sin(angle) + jz)

		t := 0.0
		if p.Radius > 0 {
			t = r / p.Radius
		}
		c := p.InsideColor.Lerp(p.OutsideColor, t)

		pick := int(rng.Float64() * 4)
		if opts.AccentColors && pick >= 1 && pick <= 3 {
			c = AccentColors[pick-1]
		}

		buf.Colors[i3] = float32(clamp01(c.R))
		buf.Colors[i3+1] = float32(clamp01(c.G))
		buf.Colors[i3+2] = float32(clamp01(c.B))
	}
	return buf
}

// jitter is ±U^power with a fair sign draw.
func jitter(rng Source, power float64) float64 {
	mag := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return -mag
	}
	return mag
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
