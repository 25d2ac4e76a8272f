package marquee

import (
	"sort"
	"sync"
	"time"
)

// FrameFunc is called once per display frame with a timestamp in milliseconds.
type FrameFunc func(ts float64)

// FrameID identifies a requested frame callback.
type FrameID uint64

// Scheduler hands out one-shot per-frame callbacks.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a manually ticked Scheduler. Callbacks requested while a tick
// is running are deferred to the next tick.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]FrameFunc
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]FrameFunc)}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	return q.next
}

// CancelFrame drops a pending callback. Unknown or already fired ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// Pending returns the number of callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Tick fires every pending callback in request order.
func (q *FrameQueue) Tick(ts float64) {
	q.mu.Lock()
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]FrameFunc, len(ids))
	for i, id := range ids {
		fns[i] = q.pending[id]
		delete(q.pending, id)
	}
	q.mu.Unlock()

	// Lock is released so callbacks can request their next frame.
	for _, fn := range fns {
		fn(ts)
	}
}

// TickerScheduler ticks a FrameQueue from a time.Ticker until Close.
type TickerScheduler struct {
	*FrameQueue
	ticker *time.Ticker
	epoch  time.Time
	done   chan struct{}
	once   sync.Once
}

// NewTickerScheduler starts ticking at fps frames per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &TickerScheduler{
		FrameQueue: NewFrameQueue(),
		ticker:     time.NewTicker(time.Second / time.Duration(fps)),
		epoch:      time.Now(),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *TickerScheduler) run() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.ticker.C:
			s.Tick(float64(now.Sub(s.epoch)) / float64(time.Millisecond))
		}
	}
}

// Close stops the ticker. Pending callbacks never fire.
func (s *TickerScheduler) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}
