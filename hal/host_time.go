package hal

import (
	"sync/atomic"
	"time"
)

type wallClock struct {
	t0 time.Time
}

func newWallClock() *wallClock { return &wallClock{t0: time.Now()} }

func (c *wallClock) Now() time.Duration { return time.Since(c.t0) }

// stepClock advances by a fixed duration per host tick.
type stepClock struct {
	step time.Duration
	n    atomic.Uint64
}

func newStepClock(step time.Duration) *stepClock { return &stepClock{step: step} }

func (c *stepClock) Now() time.Duration { return time.Duration(c.n.Load()) * c.step }

func (c *stepClock) advance() { c.n.Add(1) }
