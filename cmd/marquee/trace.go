package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/marquee"
)

// simClock fires timers when the simulation reaches them.
type simClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*simTimer
}

type simTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *simTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *simClock) AfterFunc(d time.Duration, f func()) marquee.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &simTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// advanceTo runs every timer due by now.
func (c *simClock) advanceTo(now time.Duration) {
	c.mu.Lock()
	c.now = now
	var due, rest []*simTimer
	for _, t := range c.timers {
		if t.at <= now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type traceResult struct {
	Top    []float64
	Bottom []float64
	Width  float64
}

type traceOptions struct {
	Speed      float64
	ClickPause time.Duration
	Cell       int
	Duration   time.Duration
	Step       time.Duration
	// ClickAt simulates one click; zero means none.
	ClickAt time.Duration
}

// trace runs the engine on a simulated clock and samples both offsets after
// every frame.
func trace(items []marquee.Item, opts traceOptions) traceResult {
	if opts.Step <= 0 {
		opts.Step = 16 * time.Millisecond
	}
	frames := marquee.NewFrameQueue()
	clock := &simClock{}
	engine := marquee.NewEngine(marquee.Config{
		Speed:      opts.Speed,
		ClickPause: opts.ClickPause,
		Scheduler:  frames,
		Clock:      clock,
	})
	top := newTextSurface(items, opts.Cell)
	bottom := newTextSurface(items, opts.Cell)
	engine.Mount(top, bottom)
	defer engine.Unmount()

	res := traceResult{Width: engine.Row(marquee.Forward).ContentWidth()}
	clicked := false
	for now := time.Duration(0); now <= opts.Duration; now += opts.Step {
		clock.advanceTo(now)
		if opts.ClickAt > 0 && !clicked && now >= opts.ClickAt {
			engine.Click()
			clicked = true
		}
		frames.Tick(float64(now) / float64(time.Millisecond))
		res.Top = append(res.Top, engine.Row(marquee.Forward).Offset())
		res.Bottom = append(res.Bottom, engine.Row(marquee.Reverse).Offset())
	}
	return res
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, items, err := setup()
	if err != nil {
		return err
	}
	res := trace(items, traceOptions{
		Speed:      cfg.Marquee.Speed,
		ClickPause: cfg.Marquee.ClickPause(),
		Cell:       cellWidth,
		Duration:   duration,
		Step:       step,
		ClickAt:    clickAt,
	})

	fmt.Printf("%d items, content width %.0f cells, speed %.3f cells/ms\n\n", len(items), res.Width, cfg.Marquee.Speed)
	for _, row := range []struct {
		name string
		data []float64
	}{
		{"top (forward)", res.Top},
		{"bottom (reverse)", res.Bottom},
	} {
		graph := asciigraph.Plot(row.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(row.name+" offset"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}
