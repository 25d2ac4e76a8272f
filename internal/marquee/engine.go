package marquee

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the engine needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the click resume.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock uses time.AfterFunc.
var RealClock Clock = realClock{}

// Config for an Engine. Zero values fall back to the package defaults.
type Config struct {
	Speed      float64
	ClickPause time.Duration
	Scheduler  Scheduler
	Clock      Clock
}

// Engine owns the two rows of the skills section: the top row runs forward,
// the bottom row in reverse.
type Engine struct {
	cfg Config

	mu      sync.Mutex
	mounted bool
	gen     uint64
	rows    [2]*Row
	timers  []Timer
}

func NewEngine(cfg Config) *Engine {
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.ClickPause <= 0 {
		cfg.ClickPause = DefaultClickPause
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}
	return &Engine{cfg: cfg}
}

// Mount starts both rows. Mounting an already mounted engine first unmounts
// it, so the rows always restart from their boundary offsets.
func (e *Engine) Mount(top, bottom Surface) {
	e.Unmount()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.rows[Forward] = Start(top, Options{Direction: Forward, Speed: e.cfg.Speed, Scheduler: e.cfg.Scheduler})
	e.rows[Reverse] = Start(bottom, Options{Direction: Reverse, Speed: e.cfg.Speed, Scheduler: e.cfg.Scheduler})
	e.mounted = true
}

// Unmount stops both rows whether or not they are paused, and drops any
// pending click resumes.
func (e *Engine) Unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return
	}
	for _, r := range e.rows {
		if r != nil {
			r.Stop()
		}
	}
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
	e.mounted = false
}

// Mounted reports whether the rows are running.
func (e *Engine) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

// Row returns the current row for a direction, or nil before the first Mount.
func (e *Engine) Row(d Direction) *Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d != Forward && d != Reverse {
		return nil
	}
	return e.rows[d]
}

// SetPaused is the hover control: it only touches the given row.
func (e *Engine) SetPaused(d Direction, paused bool) {
	if r := e.Row(d); r != nil {
		r.SetPaused(paused)
	}
}

// Click pauses both rows and resumes both after the click pause, even if the
// pointer never left. Each click schedules its own resume.
func (e *Engine) Click() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return
	}
	for _, r := range e.rows {
		r.SetPaused(true)
	}
	gen := e.gen
	t := e.cfg.Clock.AfterFunc(e.cfg.ClickPause, func() { e.resume(gen) })
	e.timers = append(e.timers, t)
}

func (e *Engine) resume(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted || e.gen != gen {
		return
	}
	for _, r := range e.rows {
		r.SetPaused(false)
	}
	if len(e.timers) > 0 {
		e.timers = e.timers[1:]
	}
}
