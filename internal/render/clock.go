package render

import "time"

// Clock measures monotonic time since Start.
type Clock struct {
	now     func() time.Time
	start   time.Time
	started bool
}

func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith uses now as the time source.
func NewClockWith(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Start() {
	c.start = c.now()
	c.started = true
}

func (c *Clock) Started() bool { return c.started }

// Elapsed is seconds since Start. An unstarted clock starts on first use.
func (c *Clock) Elapsed() float64 {
	if !c.started {
		c.Start()
	}
	return c.now().Sub(c.start).Seconds()
}
