// Package metrics tracks per-frame measurements for the viewers' HUDs.
package metrics

// Metric observes the absolute elapsed time of each frame.
type Metric interface {
	Name() string
	Observe(elapsed float64)
	Value() float64
	Reset()
}

// FrameRate is an exponentially smoothed frames-per-second estimate.
type FrameRate struct {
	smoothing float64
	last      float64
	seen      bool
	fps       float64
}

// NewFrameRate weighs each new sample by smoothing in (0, 1]; 0 picks 0.1.
func NewFrameRate(smoothing float64) *FrameRate {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 0.1
	}
	return &FrameRate{smoothing: smoothing}
}

func (f *FrameRate) Name() string { return "fps" }

func (f *FrameRate) Observe(elapsed float64) {
	if !f.seen {
		f.last, f.seen = elapsed, true
		return
	}
	dt := elapsed - f.last
	f.last = elapsed
	if dt <= 0 {
		return
	}
	sample := 1 / dt
	if f.fps == 0 {
		f.fps = sample
		return
	}
	f.fps += f.smoothing * (sample - f.fps)
}

func (f *FrameRate) Value() float64 { return f.fps }

func (f *FrameRate) Reset() {
	f.last, f.seen, f.fps = 0, false, 0
}

// FrameTime is the slowest frame, in seconds, since the last Reset.
type FrameTime struct {
	last  float64
	seen  bool
	worst float64
}

func NewFrameTime() *FrameTime { return &FrameTime{} }

func (f *FrameTime) Name() string { return "worst frame" }

func (f *FrameTime) Observe(elapsed float64) {
	if f.seen && elapsed-f.last > f.worst {
		f.worst = elapsed - f.last
	}
	f.last, f.seen = elapsed, true
}

func (f *FrameTime) Value() float64 { return f.worst }

func (f *FrameTime) Reset() {
	f.last, f.seen, f.worst = 0, false, 0
}
