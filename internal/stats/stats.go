// Package stats summarizes generated point clouds for the CLI and the
// terminal viewer.
package stats

import (
	"math"

	"github.com/san-kum/galaxy/internal/galaxy"
)

type Summary struct {
	Points     int
	Min, Max   [3]float64
	MeanRadius float64 // in the disk plane
	MaxRadius  float64
	Thickness  float64 // RMS of y
	MeanColor  [3]float64
}

func Summarize(buf *galaxy.Buffers) Summary {
	n := buf.Len()
	s := Summary{Points: n}
	if n == 0 {
		return s
	}
	for a := 0; a < 3; a++ {
		s.Min[a] = math.Inf(1)
		s.Max[a] = math.Inf(-1)
	}

	var sumR, sumY2 float64
	for i := 0; i < n; i++ {
		x, y, z := buf.Position(i)
		p := [3]float64{float64(x), float64(y), float64(z)}
		for a := 0; a < 3; a++ {
			s.Min[a] = math.Min(s.Min[a], p[a])
			s.Max[a] = math.Max(s.Max[a], p[a])
		}
		r := math.Hypot(p[0], p[2])
		sumR += r
		s.MaxRadius = math.Max(s.MaxRadius, r)
		sumY2 += p[1] * p[1]

		cr, cg, cb := buf.Color(i)
		s.MeanColor[0] += float64(cr)
		s.MeanColor[1] += float64(cg)
		s.MeanColor[2] += float64(cb)
	}
	fn := float64(n)
	s.MeanRadius = sumR / fn
	s.Thickness = math.Sqrt(sumY2 / fn)
	for a := 0; a < 3; a++ {
		s.MeanColor[a] /= fn
	}
	return s
}

// RadialHistogram counts points per ring of equal width out to maxRadius in
// the disk plane. Points beyond maxRadius land in the last ring.
func RadialHistogram(buf *galaxy.Buffers, bins int, maxRadius float64) []float64 {
	if bins < 1 {
		bins = 1
	}
	hist := make([]float64, bins)
	if maxRadius <= 0 {
		hist[0] = float64(buf.Len())
		return hist
	}
	for i := 0; i < buf.Len(); i++ {
		x, _, z := buf.Position(i)
		b := int(math.Hypot(float64(x), float64(z)) / maxRadius * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		hist[b]++
	}
	return hist
}

// BranchOccupancy is how many of count points each branch receives.
func BranchOccupancy(count, branches int) []int {
	if branches < 1 {
		branches = 1
	}
	occ := make([]int, branches)
	for i := 0; i < count; i++ {
		occ[galaxy.BranchIndex(i, branches)]++
	}
	return occ
}
