package panzoom

import "time"

// TickHandle identifies a pending tick request. The zero value is never
// returned by RequestTick.
type TickHandle uint64

// Scheduler is the frame-callback capability the engine runs on. Each
// request fires at most once, on the next frame; callbacks that want another
// frame must request it again.
type Scheduler interface {
	// RequestTick schedules fn for the next frame. now is the frame time
	// measured from an arbitrary, monotonic epoch.
	RequestTick(fn func(now time.Duration)) TickHandle
	// CancelTick drops a pending request. Unknown handles are ignored.
	CancelTick(h TickHandle)
}

type pendingTick struct {
	handle TickHandle
	fn     func(now time.Duration)
}

// FrameClock is a Scheduler driven by explicit Advance calls. The Viewer
// advances it once per ebiten update; tests advance it by hand.
type FrameClock struct {
	now     time.Duration
	nextID  TickHandle
	pending []pendingTick
	buf     []pendingTick
}

// NewFrameClock returns a clock at time zero with nothing scheduled.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Now returns the current clock time.
func (c *FrameClock) Now() time.Duration {
	return c.now
}

// Pending reports how many tick requests are waiting for the next frame.
func (c *FrameClock) Pending() int {
	return len(c.pending)
}

// RequestTick implements Scheduler.
func (c *FrameClock) RequestTick(fn func(now time.Duration)) TickHandle {
	c.nextID++
	c.pending = append(c.pending, pendingTick{handle: c.nextID, fn: fn})
	return c.nextID
}

// CancelTick implements Scheduler.
func (c *FrameClock) CancelTick(h TickHandle) {
	for i := range c.pending {
		if c.pending[i].handle == h {
			copy(c.pending[i:], c.pending[i+1:])
			c.pending[len(c.pending)-1] = pendingTick{}
			c.pending = c.pending[:len(c.pending)-1]
			return
		}
	}
}

// Advance moves the clock forward by dt and runs every callback that was
// pending before the call. Requests made by those callbacks run on the next
// Advance. Returns the number of callbacks run.
func (c *FrameClock) Advance(dt time.Duration) int {
	c.now += dt
	if len(c.pending) == 0 {
		return 0
	}
	c.buf, c.pending = c.pending, c.buf[:0]
	for _, p := range c.buf {
		p.fn(c.now)
	}
	n := len(c.buf)
	clear(c.buf)
	c.buf = c.buf[:0]
	return n
}

// RunFor advances the clock in fixed frames of dt until either nothing is
// pending or total has elapsed. Returns the number of frames advanced.
func (c *FrameClock) RunFor(total, dt time.Duration) int {
	frames := 0
	for elapsed := time.Duration(0); elapsed < total && len(c.pending) > 0; elapsed += dt {
		c.Advance(dt)
		frames++
	}
	return frames
}
