package metrics

import (
	"math"
	"testing"
)

func TestFrameRateSteady(t *testing.T) {
	m := NewFrameRate(0.5)
	for i := 0; i <= 100; i++ {
		m.Observe(float64(i) / 60)
	}
	if math.Abs(m.Value()-60) > 1e-6 {
		t.Errorf("expected 60 fps, got %f", m.Value())
	}
}

func TestFrameRateSmoothing(t *testing.T) {
	m := NewFrameRate(0.5)
	m.Observe(0)
	m.Observe(0.1)  // 10 fps
	m.Observe(0.15) // 20 fps sample
	if math.Abs(m.Value()-15) > 1e-9 {
		t.Errorf("expected smoothed 15 fps, got %f", m.Value())
	}

	m.Observe(0.15)
	if math.Abs(m.Value()-15) > 1e-9 {
		t.Error("zero-length frames should be ignored")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
	if NewFrameRate(0).smoothing != 0.1 {
		t.Error("invalid smoothing should fall back to 0.1")
	}
}

func TestFrameTime(t *testing.T) {
	var m Metric = NewFrameTime()
	for _, e := range []float64{1, 1.016, 1.1, 1.116} {
		m.Observe(e)
	}
	if math.Abs(m.Value()-0.084) > 1e-9 {
		t.Errorf("expected worst frame 0.084, got %f", m.Value())
	}
	m.Reset()
	m.Observe(5)
	if m.Value() != 0 {
		t.Errorf("first frame after reset has no duration, got %f", m.Value())
	}
}
