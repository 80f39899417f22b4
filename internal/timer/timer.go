package timer

import (
	"errors"
	"time"

	"github.com/iammorganparry/working-memory/internal/clock"
)

// ErrInvalidTransition is returned when an operation is attempted from a state
// that forbids it (start while running, stop/cancel/sample while idle).
var ErrInvalidTransition = errors.New("invalid timer transition")

// Interval is a fixed (startedAt, endedAt) pair in epoch milliseconds.
type Interval struct {
	StartedAt int64
	EndedAt   int64
}

// Controller owns the active/inactive timer state. It has exactly two states,
// idle and running, and never produces a Session itself.
type Controller struct {
	clk       clock.Clock
	running   bool
	startedAt time.Time
}

// New creates an idle controller reading time from clk.
func New(clk clock.Clock) *Controller {
	return &Controller{clk: clk}
}

// Running reports whether the timer is in the running state.
func (c *Controller) Running() bool {
	return c.running
}

// StartedAtMs returns the running interval's start in epoch milliseconds,
// or 0 when idle.
func (c *Controller) StartedAtMs() int64 {
	if !c.running {
		return 0
	}
	return c.startedAt.UnixMilli()
}

// Start transitions idle -> running and records the start timestamp.
func (c *Controller) Start() error {
	if c.running {
		return ErrInvalidTransition
	}
	c.running = true
	c.startedAt = c.clk.Now()
	return nil
}

// Sample returns now - startedAt in milliseconds. Valid only while running;
// it has no side effect on state, so callers may poll at any cadence.
func (c *Controller) Sample() (int64, error) {
	if !c.running {
		return 0, ErrInvalidTransition
	}
	elapsed := c.clk.Now().Sub(c.startedAt).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, nil
}

// Stop transitions running -> idle and returns the fixed interval. A stop
// landing on the start's millisecond is bumped by 1ms so the recorded
// duration is always positive.
func (c *Controller) Stop() (Interval, error) {
	if !c.running {
		return Interval{}, ErrInvalidTransition
	}
	started := c.startedAt.UnixMilli()
	ended := c.clk.Now().UnixMilli()
	if ended <= started {
		ended = started + 1
	}
	c.running = false
	c.startedAt = time.Time{}
	return Interval{StartedAt: started, EndedAt: ended}, nil
}

// Cancel transitions running -> idle, discarding the interval. It records
// nothing, distinguishing abandoned work from completed work.
func (c *Controller) Cancel() error {
	if !c.running {
		return ErrInvalidTransition
	}
	c.running = false
	c.startedAt = time.Time{}
	return nil
}
