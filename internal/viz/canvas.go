package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// cell accumulates the colors of every point that lands in it, the way
// additive blending sums overlapping points.
type cell struct {
	r, g, b float64
	hits    int
}

// Canvas is a braille canvas with per-cell additive color. Coordinates are in
// sub-pixels: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	cells         [][]cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.resize(w, h)
	return c
}

func (c *Canvas) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.cells = make([][]cell, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.cells[i] = make([]cell, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// SetSize takes sub-pixel dimensions, so the canvas can stand in as the
// viewport's drawing surface.
func (c *Canvas) SetSize(width, height int) {
	c.resize((width+1)/2, (height+3)/4)
}

// SetPixelRatio is a no-op; terminal cells have no device pixel ratio.
func (c *Canvas) SetPixelRatio(float64) {}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set lights a sub-pixel without color.
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, 1, 1, 1)
}

// Plot lights a sub-pixel and adds the color to its cell.
func (c *Canvas) Plot(x, y int, r, g, b float64) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	cl := &c.cells[row][col]
	cl.r += r
	cl.g += g
	cl.b += b
	cl.hits++
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.cells[i][j] = cell{}
		}
	}
}

// Lit reports whether any dot in the cell at (col, row) is set.
func (c *Canvas) Lit(col, row int) bool {
	return c.Grid[row][col] != blank
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell by the mean color of its points, brightened by how
// many overlap. Runs of equal color share one style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for j, r := range row {
			hex := c.cells[i][j].hex()
			if hex != runColor {
				flush()
				runColor = hex
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func (cl cell) hex() string {
	if cl.hits == 0 {
		return ""
	}
	n := float64(cl.hits)
	gain := math.Min(1, 0.45+0.12*math.Log2(n))
	return hexColor(
		int(math.Min(1, cl.r/n*gain*1.6)*255),
		int(math.Min(1, cl.g/n*gain*1.6)*255),
		int(math.Min(1, cl.b/n*gain*1.6)*255),
	)
}
