package marquee

import (
	"math"
	"sync"
)

// Options configure one row.
type Options struct {
	Direction Direction
	// Speed in pixels per millisecond; DefaultSpeed when zero.
	Speed     float64
	Scheduler Scheduler
}

// Row is one running strip. Its offset is only ever written by its own frame
// step; the pause flag is the only thing callers may change.
type Row struct {
	mu sync.Mutex

	dir          Direction
	speed        float64
	contentWidth float64
	surface      Surface
	sched        Scheduler

	offset   float64
	paused   bool
	stopped  bool
	last     float64
	hasLast  bool
	frame    FrameID
	frameSet bool
}

// Start measures the strip once and schedules the first frame. The row is
// Running when Start returns.
func Start(surface Surface, opts Options) *Row {
	speed := opts.Speed
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = DefaultSpeed
	}
	width := surface.ScrollWidth() / 2
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		width = 0
	}

	r := &Row{
		dir:          opts.Direction,
		speed:        speed,
		contentWidth: width,
		surface:      surface,
		sched:        opts.Scheduler,
	}
	if r.dir == Reverse && width > 0 {
		r.offset = -width
	}

	r.mu.Lock()
	r.schedule()
	r.mu.Unlock()
	return r
}

// schedule must be called with mu held.
func (r *Row) schedule() {
	r.frame = r.sched.RequestFrame(r.step)
	r.frameSet = true
}

func (r *Row) step(ts float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	elapsed := 0.0
	if r.hasLast {
		elapsed = ts - r.last
	}
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	r.last, r.hasLast = ts, true

	if !r.paused && r.contentWidth > 0 {
		delta := r.speed * elapsed
		switch r.dir {
		case Forward:
			r.offset -= delta
			if r.offset <= -r.contentWidth {
				r.offset = 0
			}
		case Reverse:
			r.offset += delta
			if r.offset >= 0 {
				r.offset = -r.contentWidth
			}
		}
	}

	r.surface.SetTranslateX(r.offset)
	r.schedule()
}

// SetPaused freezes or releases the row from the next frame on. The offset is
// left untouched.
func (r *Row) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

// Stop cancels the frame chain. Once it returns the surface is not written
// again. Calling it more than once is fine.
func (r *Row) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	if r.frameSet {
		r.sched.CancelFrame(r.frame)
		r.frameSet = false
	}
}

func (r *Row) Offset() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

func (r *Row) ContentWidth() float64 {
	return r.contentWidth
}

func (r *Row) Direction() Direction {
	return r.dir
}

func (r *Row) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.stopped:
		return Stopped
	case r.paused:
		return Paused
	default:
		return Running
	}
}
