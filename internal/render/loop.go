package render

import (
	"context"
	"errors"
)

var ErrLoopRunning = errors.New("render: loop already running")

// Driver is one surface's frame body.
type Driver interface {
	// ShouldClose is polled before every frame.
	ShouldClose() bool
	// Frame updates and draws one frame; elapsed is seconds since start.
	Frame(elapsed float64)
}

// Loop is a single-threaded frame loop with an explicit start/stop contract.
type Loop struct {
	clock   *Clock
	driver  Driver
	running bool
	stop    bool
	frames  int
}

func NewLoop(clock *Clock, driver Driver) *Loop {
	if clock == nil {
		clock = NewClock()
	}
	return &Loop{clock: clock, driver: driver}
}

func (l *Loop) Clock() *Clock { return l.clock }
func (l *Loop) Frames() int   { return l.frames }
func (l *Loop) Running() bool { return l.running }

// Stop ends the loop after the current frame. Call it from inside Frame.
func (l *Loop) Stop() { l.stop = true }

// Run blocks until the driver closes, Stop is called or ctx is done; only
// the last case returns an error (ctx.Err()).
func (l *Loop) Run(ctx context.Context) error {
	if l.running {
		return ErrLoopRunning
	}
	l.running, l.stop = true, false
	defer func() { l.running = false }()

	if !l.clock.Started() {
		l.clock.Start()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.stop || l.driver.ShouldClose() {
			return nil
		}

		l.driver.Frame(l.clock.Elapsed())
		l.frames++
	}
}
