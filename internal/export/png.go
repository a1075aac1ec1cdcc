package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var captionColor = color.RGBA{140, 140, 140, 255}

// accumulator sums sprite light per pixel, like additive blending onto a
// black framebuffer.
type accumulator struct {
	w, h int
	rgb  []float64
}

func newAccumulator(w, h int) *accumulator {
	return &accumulator{w: w, h: h, rgb: make([]float64, 3*w*h)}
}

func (a *accumulator) add(x, y int, r, g, b, weight float64) {
	if x < 0 || y < 0 || x >= a.w || y >= a.h {
		return
	}
	i := 3 * (y*a.w + x)
	a.rgb[i] += r * weight
	a.rgb[i+1] += g * weight
	a.rgb[i+2] += b * weight
}

// splat covers the pixels under a disk. Disks smaller than a pixel
// contribute their area to the pixel they land in.
func (a *accumulator) splat(s sprite) {
	area := math.Pi * s.radius * s.radius
	if area <= 1 {
		a.add(int(math.Floor(s.x)), int(math.Floor(s.y)), s.r, s.g, s.b, area)
		return
	}
	x0, x1 := int(math.Floor(s.x-s.radius)), int(math.Ceil(s.x+s.radius))
	y0, y1 := int(math.Floor(s.y-s.radius)), int(math.Ceil(s.y+s.radius))
	r2 := s.radius * s.radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - s.x
			dy := float64(y) + 0.5 - s.y
			if dx*dx+dy*dy <= r2 {
				a.add(x, y, s.r, s.g, s.b, 1)
			}
		}
	}
}

func (a *accumulator) image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.w, a.h))
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			i := 3 * (y*a.w + x)
			img.SetRGBA(x, y, color.RGBA{
				R: channel(a.rgb[i]),
				G: channel(a.rgb[i+1]),
				B: channel(a.rgb[i+2]),
				A: 255,
			})
		}
	}
	return img
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Render rasterizes the frame with its caption.
func Render(fr Frame) *image.RGBA {
	acc := newAccumulator(fr.Width, fr.Height)
	for _, s := range fr.sprites() {
		acc.splat(s)
	}
	img := acc.image()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, fr.Height-8),
	}
	d.DrawString(fr.Caption())
	return img
}

func WritePNG(w io.Writer, fr Frame) error {
	return png.Encode(w, Render(fr))
}
